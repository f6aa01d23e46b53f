package catalog_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"minis-storefront/internal/catalog"
	"minis-storefront/internal/models"
)

func sortFixture() []models.Product {
	return []models.Product{
		product("A", "zombie", "metal", "3.00"),
		product("B", "Archer", "metal", "5.00"),
		product("C", "knight", "metal", "3.00"),
		product("D", "Bard", "metal", ""),
		product("E", "Cleric", "metal", "12.50"),
		product("F", "Archer", "metal", "not a price"),
	}
}

func TestApplySort_MostRecentKeepsSourceOrder(t *testing.T) {
	products := sortFixture()

	assert.Equal(t, skus(products), skus(catalog.ApplySort(products, catalog.SortMostRecent)))
}

func TestApplySort_OldestIsReverse(t *testing.T) {
	products := sortFixture()

	want := skus(products)
	slices.Reverse(want)
	assert.Equal(t, want, skus(catalog.ApplySort(products, catalog.SortOldest)))
}

func TestApplySort_Alphabetical(t *testing.T) {
	result := catalog.ApplySort(sortFixture(), catalog.SortAlphabetical)

	// Case-insensitive, and the two Archers keep their relative order.
	assert.Equal(t, []string{"B", "F", "D", "E", "C", "A"}, skus(result))
}

func TestApplySort_Cheapest(t *testing.T) {
	result := catalog.ApplySort(sortFixture(), catalog.SortCheapest)

	// Missing and unparseable prices count as zero.
	assert.Equal(t, []string{"D", "F", "A", "C", "B", "E"}, skus(result))
}

func TestApplySort_MostExpensive(t *testing.T) {
	result := catalog.ApplySort(sortFixture(), catalog.SortMostExpensive)

	assert.Equal(t, []string{"E", "B", "A", "C", "D", "F"}, skus(result))
}

func TestApplySort_IsPermutationAndLeavesInputAlone(t *testing.T) {
	for _, mode := range catalog.SortModes {
		t.Run(string(mode), func(t *testing.T) {
			products := sortFixture()
			before := skus(products)

			result := catalog.ApplySort(products, mode)

			assert.ElementsMatch(t, before, skus(result))
			assert.Equal(t, before, skus(products))
		})
	}
}

func TestApplySort_UnknownModeKeepsOrder(t *testing.T) {
	products := sortFixture()

	assert.Equal(t, skus(products), skus(catalog.ApplySort(products, catalog.SortMode("random"))))
}

func TestParseSortMode(t *testing.T) {
	cases := map[string]catalog.SortMode{
		"most-recent":    catalog.SortMostRecent,
		"most recent":    catalog.SortMostRecent,
		"a-z":            catalog.SortAlphabetical,
		"alphabetical":   catalog.SortAlphabetical,
		"oldest":         catalog.SortOldest,
		"cheapest":       catalog.SortCheapest,
		"most-expensive": catalog.SortMostExpensive,
		"most expensive": catalog.SortMostExpensive,
	}
	for token, want := range cases {
		got, ok := catalog.ParseSortMode(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}

	_, ok := catalog.ParseSortMode("newest")
	assert.False(t, ok)
}
