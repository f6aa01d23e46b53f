package models

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	Product         Product         `json:"product"`
	PaintingOptions PaintingOptions `json:"paintingOptions"`
	WantsPainting   bool            `json:"wantsPainting"`
}

// UpdateCartItemRequest updates either one colour field or the special
// instructions of a line item.
type UpdateCartItemRequest struct {
	Field   string  `json:"field,omitempty" example:"hairColor"`
	Value   string  `json:"value,omitempty" example:"#112233"`
	Details *string `json:"specificDetails,omitempty"`
}

// CheckoutRequest carries the cart contents. CartID, when set, is passed
// through the success redirect so the cart can be cleared after payment.
type CheckoutRequest struct {
	CartItems []CartLineItem `json:"cartItems"`
	CartID    string         `json:"cartId,omitempty"`
}

type UpdateOrderRequest struct {
	OrderID   string `json:"orderId"`
	Completed *bool  `json:"completed"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePremadeProductRequest struct {
	Name          string           `json:"name"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Image         string           `json:"image"`
	Description   string           `json:"description"`
	SKU           string           `json:"sku"`
}

type UpdatePremadeProductRequest struct {
	ID int64 `json:"id"`
	PremadeProductPatch
}
