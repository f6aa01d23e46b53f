package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minis-storefront/internal/catalog"
	"minis-storefront/internal/models"
)

type staticFetcher struct {
	products []models.Product
	err      error
}

func (f staticFetcher) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	if f.err != nil {
		return []models.Product{}, f.err
	}
	return f.products, nil
}

func TestFinder_BrowseMetalScenario(t *testing.T) {
	products := filterFixture()
	finder := catalog.NewFinder(staticFetcher{products: products}, catalog.DefaultFacets(), 40)

	result, err := finder.Browse(context.Background(), catalog.ParseQuery("material=metal"))
	require.NoError(t, err)

	assert.Equal(t, []string{"01", "04", "05"}, skus(result.Items))
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, "material=metal", result.Query)
	assert.Nil(t, result.PrevQuery)
	assert.Nil(t, result.NextQuery)
}

func TestFinder_BrowsePagesAndLinks(t *testing.T) {
	finder := catalog.NewFinder(staticFetcher{products: numbered(85)}, catalog.DefaultFacets(), 40)

	result, err := finder.Browse(context.Background(), catalog.ParseQuery("page=2&sort=oldest"))
	require.NoError(t, err)

	assert.Len(t, result.Items, 40)
	assert.Equal(t, "SKU-044", result.Items[0].SKU)
	assert.Equal(t, 3, result.TotalPages)
	require.NotNil(t, result.PrevQuery)
	require.NotNil(t, result.NextQuery)
	assert.Equal(t, "sort=oldest", *result.PrevQuery)
	assert.Equal(t, "page=3&sort=oldest", *result.NextQuery)
}

func TestFinder_BrowsePastTheEndIsEmpty(t *testing.T) {
	finder := catalog.NewFinder(staticFetcher{products: numbered(85)}, catalog.DefaultFacets(), 40)

	result, err := finder.Browse(context.Background(), catalog.ParseQuery("page=9"))
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, 9, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	assert.Nil(t, result.NextQuery)
}

func TestFinder_BrowseDropsUnknownFilterValues(t *testing.T) {
	finder := catalog.NewFinder(staticFetcher{products: filterFixture()}, catalog.DefaultFacets(), 40)

	result, err := finder.Browse(context.Background(), catalog.ParseQuery("material=resin&gender=Female"))
	require.NoError(t, err)

	assert.Equal(t, "gender=female", result.Query)
	assert.Equal(t, []string{"02", "05", "08", "09"}, skus(result.Items))
}

func TestFinder_BrowseCatalogUnavailable(t *testing.T) {
	fetchErr := errors.Join(catalog.ErrCatalogUnavailable, errors.New("timeout"))
	finder := catalog.NewFinder(staticFetcher{err: fetchErr}, catalog.DefaultFacets(), 40)

	result, err := finder.Browse(context.Background(), catalog.DefaultViewState())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestFinder_Lookup(t *testing.T) {
	finder := catalog.NewFinder(staticFetcher{products: filterFixture()}, catalog.DefaultFacets(), 0)

	p, err := finder.Lookup(context.Background(), "07")
	require.NoError(t, err)
	assert.Equal(t, "Vampire Lord", p.Name)

	_, err = finder.Lookup(context.Background(), "99")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	assert.Equal(t, catalog.DefaultPageSize, finder.PageSize())
}
