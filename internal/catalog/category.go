package catalog

import (
	"slices"
	"strings"
)

// CategoryRecord is one row of the category table.
type CategoryRecord struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// CategoryNode is a category placed in the navigation tree.
type CategoryNode struct {
	ID       int64
	Name     string
	Slug     string
	Path     []string
	Children []*CategoryNode
}

// Hierarchy is an adjacency view over a category list. Build one per request
// from a consistent snapshot; it is read-only afterwards.
type Hierarchy struct {
	byID     map[int64]CategoryRecord
	bySlug   map[string]int64
	children map[int64][]int64
}

// NewHierarchy indexes records by id, slug and parent.
func NewHierarchy(records []CategoryRecord) *Hierarchy {
	h := &Hierarchy{
		byID:     make(map[int64]CategoryRecord, len(records)),
		bySlug:   make(map[string]int64, len(records)),
		children: make(map[int64][]int64),
	}
	for _, c := range records {
		h.byID[c.ID] = c
		h.bySlug[c.Slug] = c.ID
	}
	for _, c := range records {
		if c.ParentID == nil {
			continue
		}
		if _, ok := h.byID[*c.ParentID]; ok {
			h.children[*c.ParentID] = append(h.children[*c.ParentID], c.ID)
		}
	}
	for id := range h.children {
		slices.Sort(h.children[id])
	}
	return h
}

// ResolveSubtree returns the id of the category named by slug together with
// all of its descendants. An empty slug does not restrict anything; an
// unknown slug restricts to nothing.
func (h *Hierarchy) ResolveSubtree(slug string) CategoryScope {
	if slug == "" {
		return CategoryScope{}
	}
	root, ok := h.bySlug[slug]
	if !ok {
		return CategoryScope{Restricted: true, IDs: []int64{}}
	}

	seen := map[int64]struct{}{root: {}}
	ids := []int64{root}
	queue := []int64{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range h.children[id] {
			if _, dup := seen[child]; dup {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return CategoryScope{Restricted: true, IDs: ids}
}

// Path returns the slugs from the root down to the category with the given id.
func (h *Hierarchy) Path(id int64) []string {
	var rev []string
	seen := make(map[int64]struct{})
	for {
		c, ok := h.byID[id]
		if !ok {
			break
		}
		if _, loop := seen[id]; loop {
			break
		}
		seen[id] = struct{}{}
		rev = append(rev, c.Slug)
		if c.ParentID == nil {
			break
		}
		id = *c.ParentID
	}
	slices.Reverse(rev)
	return rev
}

// BuildTree materializes every category's path, orders rows by path and
// attaches each node under the node owning its parent path in a single pass.
func (h *Hierarchy) BuildTree() []*CategoryNode {
	nodes := make([]*CategoryNode, 0, len(h.byID))
	for id, c := range h.byID {
		nodes = append(nodes, &CategoryNode{ID: id, Name: c.Name, Slug: c.Slug, Path: h.Path(id)})
	}
	slices.SortFunc(nodes, func(a, b *CategoryNode) int {
		if n := slices.Compare(a.Path, b.Path); n != 0 {
			return n
		}
		return compareInt64(a.ID, b.ID)
	})

	byPath := make(map[string]*CategoryNode, len(nodes))
	var roots []*CategoryNode
	for _, n := range nodes {
		byPath[pathKey(n.Path)] = n
		if len(n.Path) <= 1 {
			roots = append(roots, n)
			continue
		}
		parent, ok := byPath[pathKey(n.Path[:len(n.Path)-1])]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// FlatCategory is an (id, path) pair.
type FlatCategory struct {
	ID   int64
	Path []string
}

// Flatten walks a tree depth-first and returns its (id, path) pairs.
func Flatten(tree []*CategoryNode) []FlatCategory {
	var out []FlatCategory
	var walk func([]*CategoryNode)
	walk = func(ns []*CategoryNode) {
		for _, n := range ns {
			out = append(out, FlatCategory{ID: n.ID, Path: slices.Clone(n.Path)})
			walk(n.Children)
		}
	}
	walk(tree)
	return out
}

func pathKey(path []string) string { return strings.Join(path, "/") }

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
