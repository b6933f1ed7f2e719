package dto

import "github.com/shopspring/decimal"

// ─── Shared ──────────────────────────────────────────────────────────────────

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ColorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type ImageResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// DiscountResponse describes the active discount. Label is ready to print,
// e.g. "-20%" or "-$10.00".
type DiscountResponse struct {
	ID    int64           `json:"id"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Label string          `json:"label"`
}

// PriceBounds carries numeric bounds in display units plus their formatted
// forms. The range strings are null when min equals max.
type PriceBounds struct {
	MinPrice                        decimal.Decimal `json:"minPrice"`
	MaxPrice                        decimal.Decimal `json:"maxPrice"`
	MinPriceWithDiscount            decimal.Decimal `json:"minPriceWithDiscount"`
	MaxPriceWithDiscount            decimal.Decimal `json:"maxPriceWithDiscount"`
	FormattedPrice                  string          `json:"formattedPrice"`
	FormattedPriceRange             *string         `json:"formattedPriceRange"`
	FormattedPriceWithDiscount      string          `json:"formattedPriceWithDiscount"`
	FormattedPriceRangeWithDiscount *string         `json:"formattedPriceRangeWithDiscount"`
}

// ─── Product list ────────────────────────────────────────────────────────────

type VariantSummary struct {
	ID         int64         `json:"id"`
	Name       *string       `json:"name"`
	Slug       *string       `json:"slug"`
	Color      ColorResponse `json:"color"`
	TotalStock int           `json:"totalStock"`
	IsInStock  bool          `json:"isInStock"`
	PriceBounds
	Discount    *DiscountResponse `json:"discount"`
	IsFavourite bool              `json:"isFavourite"`
	Image       *ImageResponse    `json:"image"`
}

type ProductSummary struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Gender     string           `json:"gender"`
	Category   Ref              `json:"category"`
	Brand      Ref              `json:"brand"`
	TotalStock int              `json:"totalStock"`
	IsInStock  bool             `json:"isInStock"`
	Variants   []VariantSummary `json:"variants"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ProductListResponse struct {
	Data       []ProductSummary `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

type FacetOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Hex      string `json:"hex,omitempty"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

type GenderOption struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type PriceFacet struct {
	Available *PriceRange `json:"available"`
	Applied   *PriceRange `json:"applied"`
}

type CategoryNode struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Path     []string       `json:"path"`
	Selected bool           `json:"selected"`
	Children []CategoryNode `json:"children"`
}

type FiltersResponse struct {
	Categories []CategoryNode `json:"categories"`
	Brands     []FacetOption  `json:"brands"`
	Colors     []FacetOption  `json:"colors"`
	Sizes      []FacetOption  `json:"sizes"`
	Genders    []GenderOption `json:"genders"`
	Price      PriceFacet     `json:"price"`
}

// BrowseResponse is one product page together with its filter panel.
type BrowseResponse struct {
	Products ProductListResponse `json:"products"`
	Filters  FiltersResponse     `json:"filters"`
}

// ─── Product details ─────────────────────────────────────────────────────────

type SizeOffer struct {
	SkuID                      int64           `json:"skuId"`
	SizeID                     *int64          `json:"sizeId"`
	Size                       string          `json:"size"`
	Price                      decimal.Decimal `json:"price"`
	PriceWithDiscount          decimal.Decimal `json:"priceWithDiscount"`
	FormattedPrice             string          `json:"formattedPrice"`
	FormattedPriceWithDiscount string          `json:"formattedPriceWithDiscount"`
	StockQty                   int             `json:"stockQty"`
	IsInStock                  bool            `json:"isInStock"`
}

type VariantDetails struct {
	ID         int64         `json:"id"`
	Name       *string       `json:"name"`
	Slug       *string       `json:"slug"`
	Color      ColorResponse `json:"color"`
	TotalStock int           `json:"totalStock"`
	IsInStock  bool          `json:"isInStock"`
	PriceBounds
	Discount    *DiscountResponse `json:"discount"`
	IsFavourite bool              `json:"isFavourite"`
	Images      []ImageResponse   `json:"images"`
	Sizes       []SizeOffer       `json:"sizes"`
}

type SiblingVariant struct {
	ID        int64          `json:"id"`
	Name      *string        `json:"name"`
	Slug      *string        `json:"slug"`
	Color     ColorResponse  `json:"color"`
	IsInStock bool           `json:"isInStock"`
	Image     *ImageResponse `json:"image"`
}

type ProductDetails struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Gender      string           `json:"gender"`
	Category    Ref              `json:"category"`
	Brand       Ref              `json:"brand"`
	Variant     VariantDetails   `json:"variant"`
	Siblings    []SiblingVariant `json:"siblings"`
}

// ─── Search ──────────────────────────────────────────────────────────────────

type SearchResult struct {
	ProductID   int64   `json:"productId"`
	VariantID   int64   `json:"variantId"`
	ProductName string  `json:"productName"`
	VariantName string  `json:"variantName"`
	VariantSlug string  `json:"variantSlug"`
	BrandName   string  `json:"brandName"`
	Rank        float64 `json:"rank"`
}

type SearchResponse struct {
	Query string         `json:"query"`
	Data  []SearchResult `json:"data"`
}
