package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"minis-storefront/internal/models"
)

// SortMode selects the ordering of a result set. The string value is the
// query-string token.
type SortMode string

const (
	SortMostRecent    SortMode = "most-recent"
	SortAlphabetical  SortMode = "a-z"
	SortOldest        SortMode = "oldest"
	SortCheapest      SortMode = "cheapest"
	SortMostExpensive SortMode = "most-expensive"
)

// SortModes lists the supported modes in display order.
var SortModes = []SortMode{SortMostRecent, SortAlphabetical, SortOldest, SortCheapest, SortMostExpensive}

var sortAliases = map[string]SortMode{
	"most recent":    SortMostRecent,
	"alphabetical":   SortAlphabetical,
	"most expensive": SortMostExpensive,
}

// ParseSortMode resolves a query-string token, including legacy spellings.
func ParseSortMode(s string) (SortMode, bool) {
	if slices.Contains(SortModes, SortMode(s)) {
		return SortMode(s), true
	}
	mode, ok := sortAliases[s]
	return mode, ok
}

// ApplySort returns a newly ordered copy of products. Source order is the
// "most recent" order; "oldest" is its exact reverse. Equal keys keep their
// input order.
func ApplySort(products []models.Product, mode SortMode) []models.Product {
	sorted := slices.Clone(products)

	switch mode {
	case SortAlphabetical:
		c := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b models.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortCheapest:
		sortByPrice(sorted, false)
	case SortMostExpensive:
		sortByPrice(sorted, true)
	case SortOldest:
		slices.Reverse(sorted)
	}

	return sorted
}

type pricedProduct struct {
	product models.Product
	price   decimal.Decimal
}

func sortByPrice(products []models.Product, descending bool) {
	priced := make([]pricedProduct, len(products))
	for i, p := range products {
		priced[i] = pricedProduct{product: p, price: p.PriceValue()}
	}

	slices.SortStableFunc(priced, func(a, b pricedProduct) int {
		if descending {
			return b.price.Cmp(a.price)
		}
		return a.price.Cmp(b.price)
	})

	for i := range priced {
		products[i] = priced[i].product
	}
}
