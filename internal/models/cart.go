package models

// Default colours used when a configured figure omits one.
const (
	DefaultHairColor      = "#8B4513"
	DefaultSkinColor      = "#FFDAB9"
	DefaultAccessoryColor = "#C0C0C0"
	DefaultFabricColor    = "#4169E1"
)

// PaintingOptions is the per-figure customisation chosen by the customer.
type PaintingOptions struct {
	HairColor       string `json:"hairColor"`
	SkinColor       string `json:"skinColor"`
	AccessoryColor  string `json:"accessoryColor"`
	FabricColor     string `json:"fabricColor"`
	SpecificDetails string `json:"specificDetails"`
}

// WithDefaults fills empty colours with the storefront defaults.
func (o PaintingOptions) WithDefaults() PaintingOptions {
	if o.HairColor == "" {
		o.HairColor = DefaultHairColor
	}
	if o.SkinColor == "" {
		o.SkinColor = DefaultSkinColor
	}
	if o.AccessoryColor == "" {
		o.AccessoryColor = DefaultAccessoryColor
	}
	if o.FabricColor == "" {
		o.FabricColor = DefaultFabricColor
	}
	return o
}

// CartLineItem is one configured product in a cart.
type CartLineItem struct {
	ID              string          `json:"id"`
	Product         Product         `json:"product"`
	PaintingOptions PaintingOptions `json:"paintingOptions"`
	WantsPainting   bool            `json:"wantsPainting"`
}
