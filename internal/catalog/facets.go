package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	"minis-storefront/internal/models"
)

//go:embed facets.yaml
var defaultFacetsYAML []byte

// Facet names. They double as query-string keys.
const (
	FacetMaterial = "material"
	FacetGenre    = "genre"
	FacetGender   = "gender"
	FacetRace     = "race"
	FacetHolding  = "holding"
	FacetWearing  = "wearing"
)

// FacetNames lists every facet in display order.
var FacetNames = []string{FacetMaterial, FacetGenre, FacetGender, FacetRace, FacetHolding, FacetWearing}

// FacetField names the product field a facet is tested against.
type FacetField string

const (
	FieldMaterial FacetField = "material"
	FieldTags     FacetField = "tags"
)

// MatchPolicy controls how a facet value is compared with product values.
type MatchPolicy string

const (
	MatchExact MatchPolicy = "exact"
	MatchFold  MatchPolicy = "fold"
)

// Facet is one filterable dimension with its fixed vocabulary.
type Facet struct {
	Name    string      `yaml:"name" json:"name"`
	Field   FacetField  `yaml:"field" json:"field"`
	Match   MatchPolicy `yaml:"match" json:"match"`
	Options []string    `yaml:"options" json:"options"`
}

type facetFile struct {
	Facets []Facet `yaml:"facets"`
}

var defaultFacets = mustLoadFacets(defaultFacetsYAML)

// DefaultFacets returns a copy of the embedded store vocabularies.
func DefaultFacets() []Facet {
	out := make([]Facet, len(defaultFacets))
	for i, f := range defaultFacets {
		f.Options = slices.Clone(f.Options)
		out[i] = f
	}
	return out
}

// LoadFacets parses a YAML facet definition document.
func LoadFacets(data []byte) ([]Facet, error) {
	var file facetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse facets: %w", err)
	}

	seen := make(map[string]bool, len(file.Facets))
	for i := range file.Facets {
		f := &file.Facets[i]
		if !slices.Contains(FacetNames, f.Name) {
			return nil, fmt.Errorf("unknown facet %q", f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("facet %q defined twice", f.Name)
		}
		seen[f.Name] = true

		switch f.Field {
		case FieldMaterial, FieldTags:
		default:
			return nil, fmt.Errorf("facet %q: unknown field %q", f.Name, f.Field)
		}
		switch f.Match {
		case "":
			f.Match = MatchExact
		case MatchExact, MatchFold:
		default:
			return nil, fmt.Errorf("facet %q: unknown match policy %q", f.Name, f.Match)
		}
		if len(f.Options) == 0 {
			return nil, fmt.Errorf("facet %q has no options", f.Name)
		}
	}
	return file.Facets, nil
}

func mustLoadFacets(data []byte) []Facet {
	facets, err := LoadFacets(data)
	if err != nil {
		panic(err)
	}
	return facets
}

// Matches reports whether product p satisfies value for this facet.
func (f Facet) Matches(p models.Product, value string) bool {
	switch f.Field {
	case FieldMaterial:
		return f.equal(p.Material, value)
	case FieldTags:
		for _, tag := range p.Tags {
			if f.equal(tag, value) {
				return true
			}
		}
	}
	return false
}

// Canonical maps value onto the facet vocabulary. Values outside the
// vocabulary are rejected.
func (f Facet) Canonical(value string) (string, bool) {
	for _, option := range f.Options {
		if f.equal(option, value) {
			return option, true
		}
	}
	return "", false
}

func (f Facet) equal(a, b string) bool {
	if f.Match == MatchFold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// FilterState holds at most one selected value per facet. Empty means no
// constraint.
type FilterState struct {
	Material string `json:"material,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Race     string `json:"race,omitempty"`
	Holding  string `json:"holding,omitempty"`
	Wearing  string `json:"wearing,omitempty"`
}

// Get returns the value selected for the named facet.
func (s FilterState) Get(name string) string {
	if p := s.field(name); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of s with the named facet set to value. Unknown facet
// names leave s unchanged.
func (s FilterState) With(name, value string) FilterState {
	if p := s.field(name); p != nil {
		*p = value
	}
	return s
}

// IsZero reports whether no facet is constrained.
func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

func (s *FilterState) field(name string) *string {
	switch name {
	case FacetMaterial:
		return &s.Material
	case FacetGenre:
		return &s.Genre
	case FacetGender:
		return &s.Gender
	case FacetRace:
		return &s.Race
	case FacetHolding:
		return &s.Holding
	case FacetWearing:
		return &s.Wearing
	}
	return nil
}
