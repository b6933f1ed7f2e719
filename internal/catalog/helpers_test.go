package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// rowSpec describes one SKU line; row() fills the rest with stable defaults.
type rowSpec struct {
	product  int64
	brand    int64
	category int64
	gender   Gender
	featured bool
	variant  int64
	color    int64
	sku      int64
	size     *int64
	stock    int
	price    int64
	inactive bool
	discount *Discount
	image    *Image
	created  time.Time
}

func row(s rowSpec) Row {
	if s.gender == "" {
		s.gender = GenderMen
	}
	if s.created.IsZero() {
		s.created = t0.Add(time.Duration(s.product) * time.Hour)
	}
	r := Row{
		ProductID:        s.product,
		ProductName:      "product",
		Gender:           s.gender,
		IsFeatured:       s.featured,
		ProductCreatedAt: s.created,
		BrandID:          s.brand,
		CategoryID:       s.category,
		VariantID:        s.variant,
		VariantCreatedAt: s.created,
		ColorID:          s.color,
		SkuID:            s.sku,
		SizeID:           s.size,
		StockQty:         s.stock,
		BasePrice:        s.price,
		SkuActive:        !s.inactive,
		Discount:         s.discount,
		Image:            s.image,
	}
	if s.size != nil {
		r.SizeValue = decimal.NewNullDecimal(decimal.NewFromInt(*s.size))
		r.SizeSystem = "US"
	}
	return r
}

func percent(id int64, v int64) *Discount {
	return &Discount{ID: id, Type: DiscountPercentage, Value: decimal.NewFromInt(v)}
}

func fixed(id int64, v int64) *Discount {
	return &Discount{ID: id, Type: DiscountFixed, Value: decimal.NewFromInt(v)}
}

// scenarioRows is the two-product catalog used across tests:
// P1 has a size-8 variant at 100.00 and a size-9 variant at 120.00 with 20%
// off; P2 has a single out-of-stock size-8 variant at 90.00.
func scenarioRows() []Row {
	return []Row{
		row(rowSpec{product: 1, brand: 1, category: 1, variant: 11, color: 1, sku: 101, size: ptr[int64](8), stock: 5, price: 10000}),
		row(rowSpec{product: 1, brand: 1, category: 1, variant: 12, color: 3, sku: 102, size: ptr[int64](9), stock: 2, price: 12000, discount: percent(1, 20)}),
		row(rowSpec{product: 2, brand: 2, category: 1, variant: 21, color: 2, sku: 201, size: ptr[int64](8), stock: 0, price: 9000}),
	}
}

// filterRows applies a plan's row predicates the way a store would.
func filterRows(rows []Row, p Plan) []Row {
	var out []Row
	for _, r := range rows {
		if p.MatchRow(r) {
			out = append(out, r)
		}
	}
	return out
}
