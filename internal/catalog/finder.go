package catalog

import (
	"context"
	"errors"

	"minis-storefront/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// Fetcher supplies the current catalog.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]models.Product, error)
}

// Finder runs the figure-finder pipeline: fetch, filter, sort, paginate.
type Finder struct {
	source   Fetcher
	facets   []Facet
	pageSize int
}

func NewFinder(source Fetcher, facets []Facet, pageSize int) *Finder {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Finder{source: source, facets: facets, pageSize: pageSize}
}

// Result is one rendered page of the figure finder.
type Result struct {
	Items      []models.Product `json:"items"`
	View       ViewState        `json:"view"`
	Query      string           `json:"query"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	TotalItems int              `json:"totalItems"`
	PrevQuery  *string          `json:"prevQuery,omitempty"`
	NextQuery  *string          `json:"nextQuery,omitempty"`
	Facets     []Facet          `json:"facets"`
	SortModes  []SortMode       `json:"sortModes"`
}

func (f *Finder) Facets() []Facet {
	return f.facets
}

func (f *Finder) PageSize() int {
	return f.pageSize
}

// Browse renders view. The view is normalised first, so the returned Query
// is the canonical form of what was rendered. A page past the end renders
// empty rather than being clamped.
func (f *Finder) Browse(ctx context.Context, view ViewState) (*Result, error) {
	products, err := f.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	view = view.Normalize(f.facets)
	filtered := ApplyFilters(products, view.Filters, f.facets)
	sorted := ApplySort(filtered, view.Sort)
	items, totalPages := Paginate(sorted, f.pageSize, view.Page)

	result := &Result{
		Items:      items,
		View:       view,
		Query:      view.Encode(),
		Page:       view.Page,
		PageSize:   f.pageSize,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		Facets:     f.facets,
		SortModes:  SortModes,
	}

	nav := NewNavigator(result.Query, nil)
	if prev, ok := nav.GoToPage(view.Page-1, totalPages); ok {
		q := prev.Encode()
		result.PrevQuery = &q
	}
	nav = NewNavigator(result.Query, nil)
	if next, ok := nav.GoToPage(view.Page+1, totalPages); ok {
		q := next.Encode()
		result.NextQuery = &q
	}

	return result, nil
}

// Lookup finds one catalog product by SKU.
func (f *Finder) Lookup(ctx context.Context, sku string) (*models.Product, error) {
	products, err := f.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].SKU == sku {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
