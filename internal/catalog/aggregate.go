package catalog

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ProductInfo is the product-level part of a row.
type ProductInfo struct {
	ID           int64
	Name         string
	Description  string
	Gender       Gender
	IsFeatured   bool
	CreatedAt    time.Time
	BrandID      int64
	BrandName    string
	CategoryID   int64
	CategoryName string
}

// SkuLine is one sellable size of a variant.
type SkuLine struct {
	ID         int64
	SizeID     *int64
	SizeValue  decimal.NullDecimal
	SizeSystem string
	StockQty   int
	BasePrice  int64
	IsActive   bool
}

// VariantBundle is a variant with its rows folded together: every SKU once,
// its images ordered oldest first and its active discount.
type VariantBundle struct {
	Product   ProductInfo
	ID        int64
	Name      *string
	Slug      *string
	CreatedAt time.Time
	ColorID   int64
	ColorName string
	ColorHex  string
	Skus      []SkuLine
	Images    []Image
	Discount  *Discount
}

// FirstImage is the representative image, or nil.
func (b VariantBundle) FirstImage() *Image {
	if len(b.Images) == 0 {
		return nil
	}
	img := b.Images[0]
	return &img
}

// Reduce folds fanned-out rows into one bundle per variant, in the order the
// variants first appear. The first discount seen for a variant wins; SKUs and
// images are kept once each by id.
func Reduce(rows []Row) []VariantBundle {
	index := make(map[int64]int)
	seenSku := make(map[int64]struct{})
	seenImg := make(map[int64]struct{})
	var out []VariantBundle

	for _, r := range rows {
		i, ok := index[r.VariantID]
		if !ok {
			i = len(out)
			index[r.VariantID] = i
			out = append(out, VariantBundle{
				Product: ProductInfo{
					ID:           r.ProductID,
					Name:         r.ProductName,
					Description:  r.ProductDescription,
					Gender:       r.Gender,
					IsFeatured:   r.IsFeatured,
					CreatedAt:    r.ProductCreatedAt,
					BrandID:      r.BrandID,
					BrandName:    r.BrandName,
					CategoryID:   r.CategoryID,
					CategoryName: r.CategoryName,
				},
				ID:        r.VariantID,
				Name:      r.VariantName,
				Slug:      r.VariantSlug,
				CreatedAt: r.VariantCreatedAt,
				ColorID:   r.ColorID,
				ColorName: r.ColorName,
				ColorHex:  r.ColorHex,
			})
		}
		b := &out[i]

		if b.Discount == nil && r.Discount != nil {
			d := *r.Discount
			b.Discount = &d
		}
		if _, dup := seenSku[r.SkuID]; !dup {
			seenSku[r.SkuID] = struct{}{}
			b.Skus = append(b.Skus, SkuLine{
				ID:         r.SkuID,
				SizeID:     r.SizeID,
				SizeValue:  r.SizeValue,
				SizeSystem: r.SizeSystem,
				StockQty:   r.StockQty,
				BasePrice:  r.BasePrice,
				IsActive:   r.SkuActive,
			})
		}
		if r.Image != nil {
			if _, dup := seenImg[r.Image.ID]; !dup {
				seenImg[r.Image.ID] = struct{}{}
				b.Images = append(b.Images, *r.Image)
			}
		}
	}

	for i := range out {
		slices.SortStableFunc(out[i].Images, func(a, b Image) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return compareInt64(a.ID, b.ID)
		})
	}
	return out
}

// SkuConstraint restricts which SKUs count toward a variant's aggregate.
type SkuConstraint struct {
	SizeIDs    []int64
	Price      *PriceRange
	OnlyActive bool
}

// VariantAggregate is a variant with stock and price bounds computed over the
// SKUs that satisfy a constraint.
type VariantAggregate struct {
	VariantBundle
	Matched              []SkuLine
	TotalStock           int
	MinPrice             int64
	MaxPrice             int64
	MinPriceWithDiscount int64
	MaxPriceWithDiscount int64
}

// IsInStock reports whether any matched SKU has stock.
func (v VariantAggregate) IsInStock() bool { return v.TotalStock > 0 }

// Aggregate computes stock and price bounds for b over the SKUs accepted by c.
// It does not modify b.
func Aggregate(b VariantBundle, c SkuConstraint) VariantAggregate {
	agg := VariantAggregate{VariantBundle: b}
	for _, s := range b.Skus {
		if c.OnlyActive && !s.IsActive {
			continue
		}
		if len(c.SizeIDs) > 0 && (s.SizeID == nil || !slices.Contains(c.SizeIDs, *s.SizeID)) {
			continue
		}
		if c.Price != nil {
			p := PriceWithDiscount(s.BasePrice, b.Discount)
			if p < c.Price.Min || p > c.Price.Max {
				continue
			}
		}
		if len(agg.Matched) == 0 || s.BasePrice < agg.MinPrice {
			agg.MinPrice = s.BasePrice
		}
		if len(agg.Matched) == 0 || s.BasePrice > agg.MaxPrice {
			agg.MaxPrice = s.BasePrice
		}
		agg.TotalStock += s.StockQty
		agg.Matched = append(agg.Matched, s)
	}
	agg.MinPriceWithDiscount = PriceWithDiscount(agg.MinPrice, b.Discount)
	agg.MaxPriceWithDiscount = PriceWithDiscount(agg.MaxPrice, b.Discount)
	return agg
}

// PriceWithDiscount applies d to a price in minor units. The result never
// drops below zero nor rises above the original price.
func PriceWithDiscount(price int64, d *Discount) int64 {
	if d == nil {
		return price
	}
	var out int64
	switch d.Type {
	case DiscountFixed:
		out = price - d.Value.Round(0).IntPart()
	case DiscountPercentage:
		factor := decimal.NewFromInt(1).Sub(d.Value.Div(hundred))
		out = decimal.NewFromInt(price).Mul(factor).Round(0).IntPart()
	default:
		return price
	}
	if out < 0 {
		return 0
	}
	if out > price {
		return price
	}
	return out
}

// Evaluate runs a plan over rows already filtered by its row predicates and
// returns the variants that survive, in row order. A variant with no
// matching SKU is dropped.
func Evaluate(rows []Row, p Plan) []VariantAggregate {
	var out []VariantAggregate
	for _, b := range Reduce(rows) {
		agg := Aggregate(b, p.Skus)
		if len(agg.Matched) == 0 {
			continue
		}
		keep := true
		for _, pred := range p.Variants {
			if !pred.MatchVariant(agg) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, agg)
		}
	}
	return out
}
