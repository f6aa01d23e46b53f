package models

import "github.com/shopspring/decimal"

// Product is one item from the external catalog. SKU is the identity key
// everywhere in the system.
type Product struct {
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Material    string         `json:"material,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Category    []string       `json:"category,omitempty"`
	Images      []ProductImage `json:"images,omitempty"`
	Price       string         `json:"price,omitempty"`
	Description string         `json:"description,omitempty"`
}

type ProductImage struct {
	URL string `json:"URL,omitempty"`
}

// PrimaryImage returns the first image URL, or "" when there is none.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}

// PriceValue parses Price, treating a missing or unparseable price as zero.
func (p Product) PriceValue() decimal.Decimal {
	return ParsePrice(p.Price)
}

// ParsePrice converts a decimal price string, defaulting to zero.
func ParsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PremadeProduct is an admin-managed, ready-painted figure.
type PremadeProduct struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
}

// PremadeProductPatch carries the fields of a partial update. Nil fields are
// left untouched.
type PremadeProductPatch struct {
	Name          *string          `json:"name,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         *string          `json:"image,omitempty"`
	Description   *string          `json:"description,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PremadeProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.OriginalPrice == nil &&
		p.Image == nil && p.Description == nil && p.SKU == nil
}
