// Package catalog holds the storefront query engine: filter normalization,
// category resolution, per-variant aggregation, product assembly, facet
// availability, pagination and search ranking.
//
// Everything in this package is pure. It works on rows handed over by a
// catalog store and never talks to the database itself, which keeps every
// step deterministic and unit-testable.
package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a product or variant lookup matches nothing.
	ErrNotFound = errors.New("catalog: not found")
	// ErrUnavailable wraps any failure of the underlying catalog store.
	ErrUnavailable = errors.New("catalog: store unavailable")
)

// Gender of a product.
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
	GenderKids  Gender = "kids"
)

// Genders lists every gender in display order.
var Genders = []Gender{GenderMen, GenderWomen, GenderKids}

// ParseGender reports whether s names a known gender.
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(s); g {
	case GenderMen, GenderWomen, GenderKids:
		return g, true
	}
	return "", false
}

// DiscountType is either a percentage or a fixed amount in minor units.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Discount is the single active discount attached to a variant.
type Discount struct {
	ID    int64
	Type  DiscountType
	Value decimal.Decimal
}

// Image attached to a variant.
type Image struct {
	ID        int64
	URL       string
	CreatedAt time.Time
}

// Row is one line of the product query. The query joins every SKU with its
// variant, product and reference entities, plus at most one image and one
// active discount, so a variant with n SKUs and m images yields n*m rows.
type Row struct {
	ProductID          int64
	ProductName        string
	ProductDescription string
	Gender             Gender
	IsFeatured         bool
	ProductCreatedAt   time.Time

	BrandID      int64
	BrandName    string
	CategoryID   int64
	CategoryName string

	VariantID        int64
	VariantName      *string
	VariantSlug      *string
	VariantCreatedAt time.Time

	ColorID   int64
	ColorName string
	ColorHex  string

	SkuID      int64
	SizeID     *int64
	SizeValue  decimal.NullDecimal
	SizeSystem string
	StockQty   int
	BasePrice  int64
	SkuActive  bool

	Discount *Discount
	Image    *Image
}

// Option is a reference entity (brand, color or size) offered as a facet value.
type Option struct {
	ID    int64
	Name  string
	Hex   string
	Value decimal.Decimal
}
