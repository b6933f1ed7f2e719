package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAvailability(t *testing.T) {
	vs := Evaluate(scenarioRows(), Plan{Skus: SkuConstraint{OnlyActive: true}})
	a := CollectAvailability(vs, false)

	assert.Contains(t, a.Brands, int64(1))
	assert.Contains(t, a.Brands, int64(2))
	assert.Len(t, a.Colors, 3)
	assert.Len(t, a.Sizes, 2)
	require.NotNil(t, a.Min)
	require.NotNil(t, a.Max)
	assert.Equal(t, int64(9000), *a.Min)
	assert.Equal(t, int64(10000), *a.Max)
}

func TestCollectAvailability_StockedSizesOnly(t *testing.T) {
	rows := []Row{
		row(rowSpec{product: 1, variant: 11, sku: 1, size: ptr[int64](8), stock: 0, price: 100}),
		row(rowSpec{product: 1, variant: 11, sku: 2, size: ptr[int64](9), stock: 1, price: 100}),
		row(rowSpec{product: 1, variant: 11, sku: 3, stock: 4, price: 100}),
	}
	vs := Evaluate(rows, Plan{Skus: SkuConstraint{OnlyActive: true}})

	assert.Len(t, CollectAvailability(vs, false).Sizes, 2)

	stocked := CollectAvailability(vs, true).Sizes
	assert.Len(t, stocked, 1)
	assert.Contains(t, stocked, int64(9))
}

func TestMarkOptions_NothingDisabledWithoutOtherFilters(t *testing.T) {
	opts := []Option{{ID: 1, Name: "Nike"}, {ID: 2, Name: "Adidas"}}
	out := MarkOptions(opts, []int64{2}, map[int64]struct{}{}, false)

	require.Len(t, out, 2)
	for _, o := range out {
		assert.False(t, o.Disabled)
	}
	assert.False(t, out[0].Selected)
	assert.True(t, out[1].Selected)
}

func TestMarkOptions_DisablesUnreachable(t *testing.T) {
	opts := []Option{{ID: 1, Name: "Nike"}, {ID: 2, Name: "Adidas"}, {ID: 3, Name: "Puma"}}
	out := MarkOptions(opts, nil, map[int64]struct{}{1: {}}, true)

	assert.False(t, out[0].Disabled)
	assert.True(t, out[1].Disabled)
	assert.True(t, out[2].Disabled)
}

func TestColorFacet_SelectedColorStaysEnabled(t *testing.T) {
	// colorIds=3 on the shared scenario: only P1's red variant survives,
	// so brand 2 is disabled while color 3 itself stays reachable.
	fs := Normalize(RawFilter{ColorIDs: "3"}, DefaultSettings())
	scope := CategoryScope{}

	brandPlan := fs.Plan(scope, DimBrand)
	brands := CollectAvailability(Evaluate(filterRows(scenarioRows(), brandPlan), brandPlan), false).Brands
	bo := MarkOptions([]Option{{ID: 1}, {ID: 2}}, fs.BrandIDs, brands, fs.ConstrainedBesides(DimBrand, scope))
	assert.False(t, bo[0].Disabled)
	assert.True(t, bo[1].Disabled)

	colorPlan := fs.Plan(scope, DimColor)
	colors := CollectAvailability(Evaluate(filterRows(scenarioRows(), colorPlan), colorPlan), false).Colors
	co := MarkOptions([]Option{{ID: 1}, {ID: 2}, {ID: 3}}, fs.ColorIDs, colors, fs.ConstrainedBesides(DimColor, scope))
	for _, o := range co {
		assert.False(t, o.Disabled, "color %d", o.ID)
	}
	assert.True(t, co[2].Selected)
}

func TestMarkGenders(t *testing.T) {
	out := MarkGenders([]Gender{GenderWomen}, map[Gender]struct{}{GenderMen: {}}, true)
	require.Len(t, out, 3)
	assert.Equal(t, GenderMen, out[0].Gender)
	assert.False(t, out[0].Disabled)
	assert.True(t, out[1].Selected)
	assert.True(t, out[1].Disabled)
	assert.True(t, out[2].Disabled)
}

func TestBuildPriceFacet(t *testing.T) {
	lo, hi := int64(500), int64(9000)
	fs := Normalize(RawFilter{Price: "10,20"}, DefaultSettings())

	pf := BuildPriceFacet(fs, Availability{Min: &lo, Max: &hi})
	assert.Equal(t, &lo, pf.AvailableMin)
	assert.Equal(t, &hi, pf.AvailableMax)
	require.NotNil(t, pf.Applied)
	assert.Equal(t, int64(1000), pf.Applied.Min)

	assert.Nil(t, BuildPriceFacet(FilterSet{}, Availability{}).Applied)
}
