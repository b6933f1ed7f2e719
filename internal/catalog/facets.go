package catalog

import "slices"

// FacetOption is a reference value annotated for the filter panel.
type FacetOption struct {
	Option
	Selected bool
	Disabled bool
}

// GenderOption is a gender value annotated for the filter panel.
type GenderOption struct {
	Gender   Gender
	Selected bool
	Disabled bool
}

// PriceFacet reports the reachable price window next to the applied one.
// All amounts are minor units; nil means unknown or not applied.
type PriceFacet struct {
	AvailableMin *int64
	AvailableMax *int64
	Applied      *PriceRange
}

// Availability lists the values seen among a set of surviving variants.
type Availability struct {
	Brands  map[int64]struct{}
	Colors  map[int64]struct{}
	Sizes   map[int64]struct{}
	Genders map[Gender]struct{}
	Min     *int64
	Max     *int64
}

// CollectAvailability gathers every facet value carried by vs. When
// stockedSizesOnly is set, a size counts only if one of its SKUs has stock,
// since picking an empty size would then yield nothing.
func CollectAvailability(vs []VariantAggregate, stockedSizesOnly bool) Availability {
	a := Availability{
		Brands:  make(map[int64]struct{}),
		Colors:  make(map[int64]struct{}),
		Sizes:   make(map[int64]struct{}),
		Genders: make(map[Gender]struct{}),
	}
	for _, v := range vs {
		a.Brands[v.Product.BrandID] = struct{}{}
		a.Colors[v.ColorID] = struct{}{}
		a.Genders[v.Product.Gender] = struct{}{}
		for _, s := range v.Matched {
			if s.SizeID == nil || (stockedSizesOnly && s.StockQty <= 0) {
				continue
			}
			a.Sizes[*s.SizeID] = struct{}{}
		}
		lo, hi := v.MinPriceWithDiscount, v.MaxPriceWithDiscount
		if a.Min == nil || lo < *a.Min {
			a.Min = &lo
		}
		if a.Max == nil || hi > *a.Max {
			a.Max = &hi
		}
	}
	return a
}

// MarkOptions annotates reference options. Nothing is disabled unless
// constrained is true, i.e. another dimension is filtered.
func MarkOptions(opts []Option, selected []int64, available map[int64]struct{}, constrained bool) []FacetOption {
	out := make([]FacetOption, 0, len(opts))
	for _, o := range opts {
		_, ok := available[o.ID]
		out = append(out, FacetOption{
			Option:   o,
			Selected: slices.Contains(selected, o.ID),
			Disabled: constrained && !ok,
		})
	}
	return out
}

// MarkGenders annotates the fixed gender list.
func MarkGenders(selected []Gender, available map[Gender]struct{}, constrained bool) []GenderOption {
	out := make([]GenderOption, 0, len(Genders))
	for _, g := range Genders {
		_, ok := available[g]
		out = append(out, GenderOption{
			Gender:   g,
			Selected: slices.Contains(selected, g),
			Disabled: constrained && !ok,
		})
	}
	return out
}

// BuildPriceFacet combines the window reachable without the price filter
// with the bounds the shopper applied.
func BuildPriceFacet(f FilterSet, a Availability) PriceFacet {
	pf := PriceFacet{AvailableMin: a.Min, AvailableMax: a.Max}
	if f.Price != nil {
		pr := *f.Price
		pf.Applied = &pr
	}
	return pf
}
