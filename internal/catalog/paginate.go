package catalog

import "slices"

// Page is one slice of the product list.
type Page struct {
	Items      []ProductAggregate
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// HasNext reports whether another page follows.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a page precedes this one.
func (p Page) HasPrev() bool { return p.Page > 1 && p.TotalPages > 0 }

// SortProducts orders products in place. Ascending price uses each product's
// lowest discounted variant price, descending uses its highest; the default
// is creation order. Product id breaks every tie.
func SortProducts(ps []ProductAggregate, mode SortMode) {
	slices.SortStableFunc(ps, func(a, b ProductAggregate) int {
		var c int
		switch mode {
		case SortPriceAsc:
			c = compareInt64(a.minDiscounted(), b.minDiscounted())
		case SortPriceDesc:
			c = compareInt64(b.maxDiscounted(), a.maxDiscounted())
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c != 0 {
			return c
		}
		return compareInt64(a.ID, b.ID)
	})
}

// Paginate cuts a 1-based page out of a product list. Totals count distinct
// products; ps must already be assembled.
func Paginate(ps []ProductAggregate, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultSettings().DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	total := len(ps)
	out := Page{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
		Items:      []ProductAggregate{},
	}
	// compare page counts before multiplying; huge pages would overflow
	if page > out.TotalPages {
		return out
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	out.Items = ps[start:end]
	return out
}
