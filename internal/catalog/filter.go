package catalog

import "minis-storefront/internal/models"

// ApplyFilters returns the products that satisfy every non-empty facet in
// filters, in their original order. The input slice is not modified.
func ApplyFilters(products []models.Product, filters FilterState, facets []Facet) []models.Product {
	active := make([]Facet, 0, len(facets))
	values := make([]string, 0, len(facets))
	for _, f := range facets {
		if v := filters.Get(f.Name); v != "" {
			active = append(active, f)
			values = append(values, v)
		}
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p, active, values) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAll(p models.Product, facets []Facet, values []string) bool {
	for i, f := range facets {
		if !f.Matches(p, values[i]) {
			return false
		}
	}
	return true
}
