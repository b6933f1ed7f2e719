package catalog

import "slices"

// Dimension identifies a filterable axis of the catalog.
type Dimension string

const (
	DimCategory Dimension = "category"
	DimBrand    Dimension = "brand"
	DimColor    Dimension = "color"
	DimSize     Dimension = "size"
	DimGender   Dimension = "gender"
	DimPrice    Dimension = "price"
	DimSale     Dimension = "sale"
	DimFeatured Dimension = "featured"
	DimInStock  Dimension = "inStock"
	DimProduct  Dimension = "product"
)

// Predicate is one typed clause of the product query.
type Predicate interface {
	Dimension() Dimension
}

// RowPredicate is evaluated per joined row. Catalog stores fold these into
// their own query language; MatchRow is the reference semantics.
type RowPredicate interface {
	Predicate
	MatchRow(r Row) bool
}

// VariantPredicate is evaluated on a variant after aggregation.
type VariantPredicate interface {
	Predicate
	MatchVariant(v VariantAggregate) bool
}

type CategoryIn struct{ IDs []int64 }

func (CategoryIn) Dimension() Dimension  { return DimCategory }
func (p CategoryIn) MatchRow(r Row) bool { return slices.Contains(p.IDs, r.CategoryID) }

type BrandIn struct{ IDs []int64 }

func (BrandIn) Dimension() Dimension  { return DimBrand }
func (p BrandIn) MatchRow(r Row) bool { return slices.Contains(p.IDs, r.BrandID) }

type ColorIn struct{ IDs []int64 }

func (ColorIn) Dimension() Dimension  { return DimColor }
func (p ColorIn) MatchRow(r Row) bool { return slices.Contains(p.IDs, r.ColorID) }

type SizeIn struct{ IDs []int64 }

func (SizeIn) Dimension() Dimension { return DimSize }
func (p SizeIn) MatchRow(r Row) bool {
	return r.SizeID != nil && slices.Contains(p.IDs, *r.SizeID)
}

type GenderIn struct{ Values []Gender }

func (GenderIn) Dimension() Dimension  { return DimGender }
func (p GenderIn) MatchRow(r Row) bool { return slices.Contains(p.Values, r.Gender) }

type FeaturedOnly struct{}

func (FeaturedOnly) Dimension() Dimension { return DimFeatured }
func (FeaturedOnly) MatchRow(r Row) bool  { return r.IsFeatured }

// ProductIs restricts rows to a single product (detail lookups).
type ProductIs struct{ ID int64 }

func (ProductIs) Dimension() Dimension  { return DimProduct }
func (p ProductIs) MatchRow(r Row) bool { return r.ProductID == p.ID }

type OnSale struct{}

func (OnSale) Dimension() Dimension                 { return DimSale }
func (OnSale) MatchVariant(v VariantAggregate) bool { return v.Discount != nil }

type InStock struct{}

func (InStock) Dimension() Dimension                 { return DimInStock }
func (InStock) MatchVariant(v VariantAggregate) bool { return v.TotalStock > 0 }

// CategoryScope is the outcome of resolving the category slug.
type CategoryScope struct {
	Restricted bool
	IDs        []int64
}

// Plan splits a filter set into the three places a clause can apply.
type Plan struct {
	Rows     []RowPredicate
	Skus     SkuConstraint
	Variants []VariantPredicate
}

// Active reports whether the filter set constrains dimension d.
func (f FilterSet) Active(d Dimension, scope CategoryScope) bool {
	switch d {
	case DimCategory:
		return scope.Restricted
	case DimBrand:
		return len(f.BrandIDs) > 0
	case DimColor:
		return len(f.ColorIDs) > 0
	case DimSize:
		return len(f.SizeIDs) > 0
	case DimGender:
		return len(f.Genders) > 0
	case DimPrice:
		return f.Price != nil
	case DimSale:
		return f.OnSale
	case DimFeatured:
		return f.Featured
	case DimInStock:
		return f.InStock
	}
	return false
}

var filterDimensions = []Dimension{
	DimCategory, DimBrand, DimColor, DimSize, DimGender,
	DimPrice, DimSale, DimFeatured, DimInStock,
}

// ConstrainedBesides reports whether any dimension other than d is filtered.
func (f FilterSet) ConstrainedBesides(d Dimension, scope CategoryScope) bool {
	for _, other := range filterDimensions {
		if other != d && f.Active(other, scope) {
			return true
		}
	}
	return false
}

// Plan builds the query plan for f, leaving out every clause of dimension
// except. Pass an empty Dimension to keep all clauses.
func (f FilterSet) Plan(scope CategoryScope, except Dimension) Plan {
	var p Plan
	p.Skus.OnlyActive = true
	keep := func(d Dimension) bool { return d != except && f.Active(d, scope) }

	if keep(DimCategory) {
		p.Rows = append(p.Rows, CategoryIn{IDs: scope.IDs})
	}
	if keep(DimBrand) {
		p.Rows = append(p.Rows, BrandIn{IDs: f.BrandIDs})
	}
	if keep(DimColor) {
		p.Rows = append(p.Rows, ColorIn{IDs: f.ColorIDs})
	}
	if keep(DimSize) {
		p.Rows = append(p.Rows, SizeIn{IDs: f.SizeIDs})
		p.Skus.SizeIDs = f.SizeIDs
	}
	if keep(DimGender) {
		p.Rows = append(p.Rows, GenderIn{Values: f.Genders})
	}
	if keep(DimFeatured) {
		p.Rows = append(p.Rows, FeaturedOnly{})
	}
	if keep(DimPrice) {
		pr := *f.Price
		p.Skus.Price = &pr
	}
	if keep(DimSale) {
		p.Variants = append(p.Variants, OnSale{})
	}
	if keep(DimInStock) {
		p.Variants = append(p.Variants, InStock{})
	}
	return p
}

// MatchRow applies every row predicate in the plan.
func (p Plan) MatchRow(r Row) bool {
	for _, pred := range p.Rows {
		if !pred.MatchRow(r) {
			return false
		}
	}
	return true
}

// HasVariant reports whether the plan carries a variant predicate of dimension d.
func (p Plan) HasVariant(d Dimension) bool {
	for _, pred := range p.Variants {
		if pred.Dimension() == d {
			return true
		}
	}
	return false
}
