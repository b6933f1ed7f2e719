package service

import (
	"strings"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/dto"
)

// mapper turns engine results into response DTOs, formatting prices with the
// configured currency settings.
type mapper struct {
	st catalog.Settings
}

func (m mapper) pagination(p catalog.Page) dto.Pagination {
	return dto.Pagination{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext(),
		HasPrev:    p.HasPrev(),
	}
}

func (m mapper) productSummary(p catalog.ProductAggregate, favs map[int64]bool) dto.ProductSummary {
	out := dto.ProductSummary{
		ID:         p.ID,
		Name:       p.Name,
		Gender:     string(p.Gender),
		Category:   dto.Ref{ID: p.CategoryID, Name: p.CategoryName},
		Brand:      dto.Ref{ID: p.BrandID, Name: p.BrandName},
		TotalStock: p.TotalStock,
		IsInStock:  p.IsInStock,
		Variants:   make([]dto.VariantSummary, 0, len(p.Variants)),
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, dto.VariantSummary{
			ID:          v.ID,
			Name:        v.Name,
			Slug:        v.Slug,
			Color:       color(v.VariantBundle),
			TotalStock:  v.TotalStock,
			IsInStock:   v.IsInStock(),
			PriceBounds: m.priceBounds(v),
			Discount:    m.discount(v.Discount),
			IsFavourite: favs[v.ID],
			Image:       image(v.FirstImage()),
		})
	}
	return out
}

func (m mapper) priceBounds(v catalog.VariantAggregate) dto.PriceBounds {
	return dto.PriceBounds{
		MinPrice:                        m.st.ToDisplay(v.MinPrice),
		MaxPrice:                        m.st.ToDisplay(v.MaxPrice),
		MinPriceWithDiscount:            m.st.ToDisplay(v.MinPriceWithDiscount),
		MaxPriceWithDiscount:            m.st.ToDisplay(v.MaxPriceWithDiscount),
		FormattedPrice:                  m.st.FormatPrice(v.MinPrice),
		FormattedPriceRange:             m.st.FormatRange(v.MinPrice, v.MaxPrice),
		FormattedPriceWithDiscount:      m.st.FormatPrice(v.MinPriceWithDiscount),
		FormattedPriceRangeWithDiscount: m.st.FormatRange(v.MinPriceWithDiscount, v.MaxPriceWithDiscount),
	}
}

func (m mapper) discount(d *catalog.Discount) *dto.DiscountResponse {
	if d == nil {
		return nil
	}
	out := &dto.DiscountResponse{ID: d.ID, Type: string(d.Type), Value: d.Value}
	switch d.Type {
	case catalog.DiscountPercentage:
		out.Label = "-" + d.Value.String() + "%"
	case catalog.DiscountFixed:
		out.Label = "-" + m.st.FormatPrice(d.Value.Round(0).IntPart())
	}
	return out
}

func color(b catalog.VariantBundle) dto.ColorResponse {
	return dto.ColorResponse{ID: b.ColorID, Name: b.ColorName, Hex: b.ColorHex}
}

func image(img *catalog.Image) *dto.ImageResponse {
	if img == nil {
		return nil
	}
	return &dto.ImageResponse{ID: img.ID, URL: img.URL}
}

func (m mapper) facetOptions(opts []catalog.FacetOption) []dto.FacetOption {
	out := make([]dto.FacetOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.FacetOption{
			ID:       o.ID,
			Name:     o.Name,
			Hex:      o.Hex,
			Selected: o.Selected,
			Disabled: o.Disabled,
		})
	}
	return out
}

func (m mapper) genderOptions(opts []catalog.GenderOption) []dto.GenderOption {
	out := make([]dto.GenderOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.GenderOption{Value: string(o.Gender), Selected: o.Selected, Disabled: o.Disabled})
	}
	return out
}

func (m mapper) priceFacet(pf catalog.PriceFacet) dto.PriceFacet {
	var out dto.PriceFacet
	if pf.AvailableMin != nil && pf.AvailableMax != nil {
		out.Available = &dto.PriceRange{Min: m.st.ToDisplay(*pf.AvailableMin), Max: m.st.ToDisplay(*pf.AvailableMax)}
	}
	if pf.Applied != nil {
		out.Applied = &dto.PriceRange{Min: m.st.ToDisplay(pf.Applied.Min), Max: m.st.ToDisplay(pf.Applied.Max)}
	}
	return out
}

// categoryTree converts the navigation tree, marking the node named by
// selected.
func (m mapper) categoryTree(nodes []*catalog.CategoryNode, selected string) []dto.CategoryNode {
	out := make([]dto.CategoryNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryNode{
			ID:       n.ID,
			Name:     n.Name,
			Slug:     n.Slug,
			Path:     n.Path,
			Selected: selected != "" && n.Slug == selected,
			Children: m.categoryTree(n.Children, selected),
		})
	}
	return out
}

func (m mapper) productDetails(v catalog.VariantAggregate, siblings []catalog.VariantAggregate, favourite bool) *dto.ProductDetails {
	p := v.Product
	out := &dto.ProductDetails{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Gender:      string(p.Gender),
		Category:    dto.Ref{ID: p.CategoryID, Name: p.CategoryName},
		Brand:       dto.Ref{ID: p.BrandID, Name: p.BrandName},
		Variant: dto.VariantDetails{
			ID:          v.ID,
			Name:        v.Name,
			Slug:        v.Slug,
			Color:       color(v.VariantBundle),
			TotalStock:  v.TotalStock,
			IsInStock:   v.IsInStock(),
			PriceBounds: m.priceBounds(v),
			Discount:    m.discount(v.Discount),
			IsFavourite: favourite,
			Images:      make([]dto.ImageResponse, 0, len(v.Images)),
			Sizes:       make([]dto.SizeOffer, 0, len(v.Matched)),
		},
		Siblings: make([]dto.SiblingVariant, 0, len(siblings)),
	}
	for _, img := range v.Images {
		out.Variant.Images = append(out.Variant.Images, dto.ImageResponse{ID: img.ID, URL: img.URL})
	}
	for _, s := range v.Matched {
		discounted := catalog.PriceWithDiscount(s.BasePrice, v.Discount)
		out.Variant.Sizes = append(out.Variant.Sizes, dto.SizeOffer{
			SkuID:                      s.ID,
			SizeID:                     s.SizeID,
			Size:                       sizeLabel(s),
			Price:                      m.st.ToDisplay(s.BasePrice),
			PriceWithDiscount:          m.st.ToDisplay(discounted),
			FormattedPrice:             m.st.FormatPrice(s.BasePrice),
			FormattedPriceWithDiscount: m.st.FormatPrice(discounted),
			StockQty:                   s.StockQty,
			IsInStock:                  s.StockQty > 0,
		})
	}
	for _, sib := range siblings {
		out.Siblings = append(out.Siblings, dto.SiblingVariant{
			ID:        sib.ID,
			Name:      sib.Name,
			Slug:      sib.Slug,
			Color:     color(sib.VariantBundle),
			IsInStock: sib.IsInStock(),
			Image:     image(sib.FirstImage()),
		})
	}
	return out
}

// sizeLabel renders "42.5 EU"; a SKU without size is "one size".
func sizeLabel(s catalog.SkuLine) string {
	if !s.SizeValue.Valid {
		return "one size"
	}
	return strings.TrimSpace(s.SizeValue.Decimal.String() + " " + s.SizeSystem)
}
