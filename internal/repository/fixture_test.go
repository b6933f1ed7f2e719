package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "testdata/catalog.yaml"

func loadTestFixture(t *testing.T) *Fixture {
	t.Helper()
	fx, err := LoadFixture(fixturePath)
	require.NoError(t, err)
	return fx
}

func TestLoadFixture(t *testing.T) {
	fx := loadTestFixture(t)

	assert.Len(t, fx.Categories, 5)
	assert.Len(t, fx.Brands, 3)
	assert.Len(t, fx.Sizes, 3)
	require.Len(t, fx.Products, 4)

	p3 := fx.Products[2]
	require.Len(t, p3.Variants, 1)
	require.Len(t, p3.Variants[0].Discounts, 2)
	assert.Equal(t, "FIXED", p3.Variants[0].Discounts[0].Type)
	assert.Equal(t, "1000", p3.Variants[0].Discounts[0].Value.String())
	assert.True(t, p3.Variants[0].Skus[1].Inactive)
	assert.Equal(t, "42.5", fx.Sizes[2].Value.String())
}

func TestLoadFixture_MissingFile(t *testing.T) {
	_, err := LoadFixture("testdata/missing.yaml")
	assert.ErrorContains(t, err, "read fixture")
}

func TestParseFixture_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "malformed yaml",
			yaml: "categories: [",
			want: "parse fixture",
		},
		{
			name: "duplicate category",
			yaml: "categories: [{id: 1, slug: a}, {id: 1, slug: b}]",
			want: "duplicate category 1",
		},
		{
			name: "unknown parent",
			yaml: "categories: [{id: 1, parentId: 9, slug: a}]",
			want: "unknown parent 9",
		},
		{
			name: "unknown brand",
			yaml: `
categories: [{id: 1, slug: a}]
products: [{id: 1, brandId: 5, categoryId: 1}]`,
			want: "unknown brand 5",
		},
		{
			name: "unknown color",
			yaml: `
categories: [{id: 1, slug: a}]
brands: [{id: 1, name: Nike}]
products: [{id: 1, brandId: 1, categoryId: 1, variants: [{id: 10, colorId: 3}]}]`,
			want: "unknown color 3",
		},
		{
			name: "two active discounts",
			yaml: `
categories: [{id: 1, slug: a}]
brands: [{id: 1, name: Nike}]
colors: [{id: 1, name: Black}]
products:
  - id: 1
    brandId: 1
    categoryId: 1
    variants:
      - id: 10
        colorId: 1
        discounts: [{id: 1, type: FIXED, value: "1"}, {id: 2, type: FIXED, value: "2"}]`,
			want: "2 active discounts",
		},
		{
			name: "negative stock",
			yaml: `
categories: [{id: 1, slug: a}]
brands: [{id: 1, name: Nike}]
colors: [{id: 1, name: Black}]
products: [{id: 1, brandId: 1, categoryId: 1, variants: [{id: 10, colorId: 1, skus: [{id: 5, stock: -1, price: 100}]}]}]`,
			want: "negative price or stock",
		},
		{
			name: "dangling favourite",
			yaml: "favourites: [{userId: 1, variantId: 99}]",
			want: "unknown variant 99",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tc.yaml))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestOrderedCategories_ParentsFirst(t *testing.T) {
	one, two := int64(1), int64(2)
	out := orderedCategories([]FixtureCategory{
		{ID: 3, ParentID: &two},
		{ID: 2, ParentID: &one},
		{ID: 1},
	})

	pos := make(map[int64]int)
	for i, c := range out {
		pos[c.ID] = i
	}
	require.Len(t, out, 3)
	assert.Less(t, pos[1], pos[2])
	assert.Less(t, pos[2], pos[3])
}
