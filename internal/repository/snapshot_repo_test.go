package repository

import (
	"context"
	"testing"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T) CatalogRepository {
	t.Helper()
	return NewSnapshotRepository(loadTestFixture(t))
}

type rowKey struct{ variant, sku, image int64 }

func keysOf(rows []catalog.Row) []rowKey {
	out := make([]rowKey, 0, len(rows))
	for _, r := range rows {
		k := rowKey{variant: r.VariantID, sku: r.SkuID}
		if r.Image != nil {
			k.image = r.Image.ID
		}
		out = append(out, k)
	}
	return out
}

func TestSnapshot_ScanRowsFanOut(t *testing.T) {
	rows, err := newSnapshot(t).ScanRows(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []rowKey{
		{11, 101, 1002}, {11, 101, 1001},
		{12, 102, 0},
		{21, 201, 0},
		{31, 301, 0}, {31, 302, 0},
	}, keysOf(rows), "inactive products are hidden and images come oldest first")

	red := rows[2]
	require.NotNil(t, red.Discount)
	assert.Equal(t, catalog.DiscountPercentage, red.Discount.Type)
	assert.Equal(t, "Nike", red.BrandName)
	assert.Equal(t, "#FF0000", red.ColorHex)
	assert.Equal(t, "US", red.SizeSystem)

	trail := rows[4]
	require.NotNil(t, trail.Discount)
	assert.Equal(t, int64(2), trail.Discount.ID, "inactive discount skipped")
	assert.False(t, rows[5].SkuActive)
}

func TestSnapshot_ScanRowsAppliesPredicates(t *testing.T) {
	repo := newSnapshot(t)
	ctx := context.Background()

	rows, err := repo.ScanRows(ctx, []catalog.RowPredicate{catalog.BrandIn{IDs: []int64{1}}, catalog.ColorIn{IDs: []int64{3}}})
	require.NoError(t, err)
	assert.Equal(t, []rowKey{{12, 102, 0}}, keysOf(rows))

	rows, err = repo.ScanRows(ctx, []catalog.RowPredicate{catalog.GenderIn{Values: []catalog.Gender{catalog.GenderKids}}})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.ScanRows(ctx, []catalog.RowPredicate{catalog.CategoryIn{}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSnapshot_ScanRowsHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSnapshot(t).ScanRows(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot_ReferenceLists(t *testing.T) {
	repo := newSnapshot(t)
	ctx := context.Background()

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adidas", "Nike", "Puma"}, optionNames(brands))

	sizes, err := repo.ListSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"42.5 EU", "8 US", "9 US"}, optionNames(sizes))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "shoes", cats[0].Slug)
}

func optionNames(opts []catalog.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Name)
	}
	return out
}

func TestSnapshot_FindVariant(t *testing.T) {
	repo := newSnapshot(t)
	ctx := context.Background()

	p, v, err := repo.FindVariant(ctx, "pegasus-41-red")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p)
	assert.Equal(t, int64(12), v)

	p, v, err = repo.FindVariant(ctx, "31")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p)
	assert.Equal(t, int64(31), v)

	for _, missing := range []string{"999", "no-such-slug", "cortez-vintage-red", "41"} {
		_, _, err = repo.FindVariant(ctx, missing)
		assert.ErrorIs(t, err, catalog.ErrNotFound, missing)
	}
}

func TestSnapshot_SearchCandidates(t *testing.T) {
	docs, err := newSnapshot(t).SearchCandidates(context.Background(), catalog.Tokenize("nike"))
	require.NoError(t, err)

	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.VariantID)
	}
	assert.Equal(t, []int64{11, 12}, ids, "one document per variant; inactive Cortez excluded")
}

func TestSnapshot_SearchCandidatesIgnoresAccents(t *testing.T) {
	repo := newSnapshot(t)
	for _, q := range []string{"creme", "Crème", "CREME"} {
		docs, err := repo.SearchCandidates(context.Background(), catalog.Tokenize(q))
		require.NoError(t, err)
		require.Len(t, docs, 1, q)
		assert.Equal(t, int64(21), docs[0].VariantID, q)
	}
}

func TestSnapshot_FavouriteVariantIDs(t *testing.T) {
	repo := newSnapshot(t)
	ctx := context.Background()

	favs, err := repo.FavouriteVariantIDs(ctx, 7, []int64{11, 12})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{11: true}, favs)

	favs, err = repo.FavouriteVariantIDs(ctx, 8, []int64{11})
	require.NoError(t, err)
	assert.Empty(t, favs)
}
