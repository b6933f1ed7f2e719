package repository

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/model"
)

type snapshotRepo struct {
	fx      *Fixture
	brands  map[int64]FixtureBrand
	cats    map[int64]FixtureCategory
	colors  map[int64]FixtureColor
	sizes   map[int64]FixtureSize
	rows    []catalog.Row
	favs    map[int64]map[int64]bool
	bySlug  map[string]int64
	variant map[int64]int64 // variant id -> product id
}

// NewSnapshotRepository serves the catalog from an in-memory fixture. Rows
// are fanned out once, in the same order the SQL store returns them.
func NewSnapshotRepository(fx *Fixture) CatalogRepository {
	r := &snapshotRepo{
		fx:      fx,
		brands:  make(map[int64]FixtureBrand),
		cats:    make(map[int64]FixtureCategory),
		colors:  make(map[int64]FixtureColor),
		sizes:   make(map[int64]FixtureSize),
		favs:    make(map[int64]map[int64]bool),
		bySlug:  make(map[string]int64),
		variant: make(map[int64]int64),
	}
	for _, b := range fx.Brands {
		r.brands[b.ID] = b
	}
	for _, c := range fx.Categories {
		r.cats[c.ID] = c
	}
	for _, c := range fx.Colors {
		r.colors[c.ID] = c
	}
	for _, s := range fx.Sizes {
		r.sizes[s.ID] = s
	}
	for _, f := range fx.Favourites {
		if r.favs[f.UserID] == nil {
			r.favs[f.UserID] = make(map[int64]bool)
		}
		r.favs[f.UserID][f.VariantID] = true
	}
	r.rows = r.fanOut()
	return r
}

func (r *snapshotRepo) fanOut() []catalog.Row {
	products := slices.Clone(r.fx.Products)
	slices.SortStableFunc(products, func(a, b FixtureProduct) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var rows []catalog.Row
	for _, p := range products {
		if p.Inactive {
			continue
		}
		brand := r.brands[p.BrandID]
		cat := r.cats[p.CategoryID]
		variants := slices.Clone(p.Variants)
		slices.SortFunc(variants, func(a, b FixtureVariant) int { return cmp.Compare(a.ID, b.ID) })

		for _, v := range variants {
			r.variant[v.ID] = p.ID
			if v.Slug != nil {
				r.bySlug[*v.Slug] = v.ID
			}
			color := r.colors[v.ColorID]
			var disc *catalog.Discount
			for _, d := range v.Discounts {
				if !d.Inactive {
					disc = &catalog.Discount{ID: d.ID, Type: catalog.DiscountType(d.Type), Value: d.Value}
					break
				}
			}
			images := slices.Clone(v.Images)
			slices.SortStableFunc(images, func(a, b FixtureImage) int {
				if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
					return c
				}
				return cmp.Compare(a.ID, b.ID)
			})
			skus := slices.Clone(v.Skus)
			slices.SortFunc(skus, func(a, b FixtureSku) int { return cmp.Compare(a.ID, b.ID) })

			for _, s := range skus {
				base := catalog.Row{
					ProductID:          p.ID,
					ProductName:        p.Name,
					ProductDescription: p.Description,
					Gender:             catalog.Gender(p.Gender),
					IsFeatured:         p.Featured,
					ProductCreatedAt:   p.CreatedAt,
					BrandID:            brand.ID,
					BrandName:          brand.Name,
					CategoryID:         cat.ID,
					CategoryName:       cat.Name,
					VariantID:          v.ID,
					VariantName:        v.Name,
					VariantSlug:        v.Slug,
					VariantCreatedAt:   v.CreatedAt,
					ColorID:            color.ID,
					ColorName:          color.Name,
					ColorHex:           color.Hex,
					SkuID:              s.ID,
					SizeID:             s.SizeID,
					StockQty:           s.Stock,
					BasePrice:          s.Price,
					SkuActive:          !s.Inactive,
					Discount:           disc,
				}
				if s.SizeID != nil {
					if sz, ok := r.sizes[*s.SizeID]; ok {
						base.SizeValue.Decimal, base.SizeValue.Valid = sz.Value, true
						base.SizeSystem = sz.System
					}
				}
				if len(images) == 0 {
					rows = append(rows, base)
					continue
				}
				for _, img := range images {
					row := base
					row.Image = &catalog.Image{ID: img.ID, URL: img.URL, CreatedAt: img.CreatedAt}
					rows = append(rows, row)
				}
			}
		}
	}
	return rows
}

func (r *snapshotRepo) ScanRows(ctx context.Context, preds []catalog.RowPredicate) ([]catalog.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan := catalog.Plan{Rows: preds}
	out := make([]catalog.Row, 0, len(r.rows))
	for _, row := range r.rows {
		if plan.MatchRow(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *snapshotRepo) ListCategories(ctx context.Context) ([]catalog.CategoryRecord, error) {
	out := make([]catalog.CategoryRecord, 0, len(r.fx.Categories))
	for _, c := range r.fx.Categories {
		out = append(out, catalog.CategoryRecord{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Slug: c.Slug})
	}
	slices.SortFunc(out, func(a, b catalog.CategoryRecord) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *snapshotRepo) ListBrands(ctx context.Context) ([]catalog.Option, error) {
	var out []catalog.Option
	for _, b := range r.fx.Brands {
		if !b.Inactive {
			out = append(out, catalog.Option{ID: b.ID, Name: b.Name})
		}
	}
	sortByName(out)
	return out, nil
}

func (r *snapshotRepo) ListColors(ctx context.Context) ([]catalog.Option, error) {
	var out []catalog.Option
	for _, c := range r.fx.Colors {
		if !c.Inactive {
			out = append(out, catalog.Option{ID: c.ID, Name: c.Name, Hex: c.Hex})
		}
	}
	sortByName(out)
	return out, nil
}

func (r *snapshotRepo) ListSizes(ctx context.Context) ([]catalog.Option, error) {
	var list []model.Size
	for _, s := range r.fx.Sizes {
		if !s.Inactive {
			list = append(list, model.Size{ID: s.ID, Value: s.Value, System: s.System})
		}
	}
	slices.SortFunc(list, func(a, b model.Size) int {
		if c := strings.Compare(a.System, b.System); c != 0 {
			return c
		}
		return a.Value.Cmp(b.Value)
	})
	out := make([]catalog.Option, 0, len(list))
	for _, s := range list {
		out = append(out, SizeOption(s))
	}
	return out, nil
}

func (r *snapshotRepo) FindVariant(ctx context.Context, idOrSlug string) (int64, int64, error) {
	variantID, err := strconv.ParseInt(idOrSlug, 10, 64)
	if err != nil {
		id, ok := r.bySlug[idOrSlug]
		if !ok {
			return 0, 0, catalog.ErrNotFound
		}
		variantID = id
	}
	productID, ok := r.variant[variantID]
	if !ok {
		return 0, 0, catalog.ErrNotFound
	}
	return productID, variantID, nil
}

func (r *snapshotRepo) SearchCandidates(ctx context.Context, tokens []string) ([]catalog.SearchDocument, error) {
	var out []catalog.SearchDocument
	seen := make(map[int64]bool)
	for _, row := range r.rows {
		if seen[row.VariantID] {
			continue
		}
		seen[row.VariantID] = true
		doc := catalog.SearchDocument{
			ProductID:     row.ProductID,
			VariantID:     row.VariantID,
			ProductName:   row.ProductName,
			VariantName:   deref(row.VariantName),
			VariantSlug:   deref(row.VariantSlug),
			BrandName:     row.BrandName,
			ProductActive: true,
		}
		fields := catalog.Fold(doc.BrandName + "\x00" + doc.ProductName + "\x00" + doc.VariantName)
		for _, t := range tokens {
			if strings.Contains(fields, t) {
				out = append(out, doc)
				break
			}
		}
	}
	return out, nil
}

func (r *snapshotRepo) FavouriteVariantIDs(ctx context.Context, userID int64, variantIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, id := range variantIDs {
		if r.favs[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

func sortByName(opts []catalog.Option) {
	slices.SortFunc(opts, func(a, b catalog.Option) int { return strings.Compare(a.Name, b.Name) })
}
