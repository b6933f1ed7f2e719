package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variantAgg(product, variant int64, lo, hi int64, stock int) VariantAggregate {
	return VariantAggregate{
		VariantBundle: VariantBundle{
			Product: ProductInfo{ID: product, CreatedAt: t0.Add(time.Duration(product) * time.Hour)},
			ID:      variant,
		},
		TotalStock:           stock,
		MinPrice:             lo,
		MaxPrice:             hi,
		MinPriceWithDiscount: lo,
		MaxPriceWithDiscount: hi,
	}
}

func productIDs(ps []ProductAggregate) []int64 {
	ids := make([]int64, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestAssemble_GroupsByProductInFirstSeenOrder(t *testing.T) {
	ps := Assemble([]VariantAggregate{
		variantAgg(2, 21, 100, 100, 0),
		variantAgg(1, 11, 100, 100, 3),
		variantAgg(2, 22, 100, 100, 4),
		variantAgg(2, 21, 100, 100, 0),
	})

	require.Len(t, ps, 2)
	assert.Equal(t, []int64{2, 1}, productIDs(ps))
	assert.Len(t, ps[0].Variants, 2, "repeated variant counted once")
	assert.Equal(t, 4, ps[0].TotalStock)
	assert.True(t, ps[0].IsInStock)
}

func TestAssemble_OutOfStockProduct(t *testing.T) {
	ps := Assemble([]VariantAggregate{variantAgg(1, 11, 100, 100, 0)})
	require.Len(t, ps, 1)
	assert.False(t, ps[0].IsInStock)
}

func TestSortProducts_PriceUsesDifferentKeysPerDirection(t *testing.T) {
	// A spans 50..300, B spans 100..200: A is cheapest and most expensive.
	build := func() []ProductAggregate {
		return Assemble([]VariantAggregate{
			variantAgg(2, 21, 100, 200, 1),
			variantAgg(1, 11, 50, 60, 1),
			variantAgg(1, 12, 250, 300, 1),
		})
	}

	asc := build()
	SortProducts(asc, SortPriceAsc)
	assert.Equal(t, []int64{1, 2}, productIDs(asc))

	desc := build()
	SortProducts(desc, SortPriceDesc)
	assert.Equal(t, []int64{1, 2}, productIDs(desc))
}

func TestSortProducts_TiesBreakOnProductID(t *testing.T) {
	ps := Assemble([]VariantAggregate{
		variantAgg(3, 31, 100, 100, 1),
		variantAgg(1, 11, 100, 100, 1),
		variantAgg(2, 21, 100, 100, 1),
	})
	SortProducts(ps, SortPriceAsc)
	assert.Equal(t, []int64{1, 2, 3}, productIDs(ps))
	SortProducts(ps, SortPriceDesc)
	assert.Equal(t, []int64{1, 2, 3}, productIDs(ps))
}

func TestSortProducts_DefaultIsCreationOrder(t *testing.T) {
	ps := Assemble([]VariantAggregate{
		variantAgg(3, 31, 100, 100, 1),
		variantAgg(1, 11, 900, 900, 1),
		variantAgg(2, 21, 10, 10, 1),
	})
	SortProducts(ps, SortDefault)
	assert.Equal(t, []int64{1, 2, 3}, productIDs(ps))
}

func TestPaginate_PagesPartitionTheList(t *testing.T) {
	var vs []VariantAggregate
	for i := int64(1); i <= 23; i++ {
		vs = append(vs, variantAgg(i, i*10, 100, 100, 1))
	}
	ps := Assemble(vs)

	for _, perPage := range []int{1, 5, 10, 23, 50} {
		var seen []int64
		first := Paginate(ps, 1, perPage)
		for page := 1; page <= first.TotalPages; page++ {
			p := Paginate(ps, page, perPage)
			assert.Equal(t, 23, p.Total)
			assert.LessOrEqual(t, len(p.Items), perPage)
			seen = append(seen, productIDs(p.Items)...)
		}
		assert.Equal(t, productIDs(ps), seen, "perPage %d", perPage)
	}
}

func TestPaginate_Flags(t *testing.T) {
	var vs []VariantAggregate
	for i := int64(1); i <= 15; i++ {
		vs = append(vs, variantAgg(i, i*10, 100, 100, 1))
	}
	ps := Assemble(vs)

	p1 := Paginate(ps, 1, 10)
	assert.Equal(t, 2, p1.TotalPages)
	assert.Len(t, p1.Items, 10)
	assert.True(t, p1.HasNext())
	assert.False(t, p1.HasPrev())

	p2 := Paginate(ps, 2, 10)
	assert.Len(t, p2.Items, 5)
	assert.False(t, p2.HasNext())
	assert.True(t, p2.HasPrev())

	beyond := Paginate(ps, 9, 10)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
	assert.Equal(t, 15, beyond.Total)

	huge := Paginate(ps, 1_000_000_000_000_000_000, 10)
	assert.Empty(t, huge.Items)
	assert.Equal(t, 2, huge.TotalPages)
	assert.False(t, huge.HasNext())
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 1, 10)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
	assert.Empty(t, p.Items)
}
