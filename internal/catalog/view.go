package catalog

import (
	"net/url"
	"strconv"
)

// Query-string keys besides the facet names.
const (
	KeySort = "sort"
	KeyPage = "page"
)

// ViewState is everything that determines what the figure finder renders.
// It round-trips through its query-string form; default values are omitted
// from that form.
type ViewState struct {
	Filters FilterState `json:"filters"`
	Sort    SortMode    `json:"sort"`
	Page    int         `json:"page"`
}

func DefaultViewState() ViewState {
	return ViewState{Sort: SortMostRecent, Page: 1}
}

// ParseQuery parses a raw query string. Malformed pairs are skipped.
func ParseQuery(rawQuery string) ViewState {
	values, _ := url.ParseQuery(rawQuery)
	return ParseViewState(values)
}

// ParseViewState projects the recognised keys of values onto a ViewState.
// Unknown keys are ignored and missing or invalid values take defaults.
func ParseViewState(values url.Values) ViewState {
	v := DefaultViewState()

	for _, name := range FacetNames {
		v.Filters = v.Filters.With(name, values.Get(name))
	}

	if mode, ok := ParseSortMode(values.Get(KeySort)); ok {
		v.Sort = mode
	}

	if page, err := strconv.Atoi(values.Get(KeyPage)); err == nil && page > 0 {
		v.Page = page
	}

	return v
}

// Values returns the non-default parts of v.
func (v ViewState) Values() url.Values {
	values := url.Values{}
	for _, name := range FacetNames {
		if value := v.Filters.Get(name); value != "" {
			values.Set(name, value)
		}
	}
	if v.Sort != "" && v.Sort != SortMostRecent {
		values.Set(KeySort, string(v.Sort))
	}
	if v.Page > 1 {
		values.Set(KeyPage, strconv.Itoa(v.Page))
	}
	return values
}

// Encode serialises v. The default view encodes to "".
func (v ViewState) Encode() string {
	return v.Values().Encode()
}

// WithFilter sets one facet and returns to the first page.
func (v ViewState) WithFilter(name, value string) ViewState {
	v.Filters = v.Filters.With(name, value)
	v.Page = 1
	return v
}

// WithFilters replaces every facet and returns to the first page.
func (v ViewState) WithFilters(filters FilterState) ViewState {
	v.Filters = filters
	v.Page = 1
	return v
}

// WithSort changes the ordering and returns to the first page.
func (v ViewState) WithSort(mode SortMode) ViewState {
	v.Sort = mode
	v.Page = 1
	return v
}

func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}

// Normalize maps every filter value onto its facet vocabulary, dropping
// values the vocabulary does not contain, and repairs an invalid sort or
// page.
func (v ViewState) Normalize(facets []Facet) ViewState {
	var filters FilterState
	for _, f := range facets {
		value := v.Filters.Get(f.Name)
		if value == "" {
			continue
		}
		if canonical, ok := f.Canonical(value); ok {
			filters = filters.With(f.Name, canonical)
		}
	}
	v.Filters = filters

	if _, ok := ParseSortMode(string(v.Sort)); !ok {
		v.Sort = SortMostRecent
	}
	if v.Page < 1 {
		v.Page = 1
	}
	return v
}
