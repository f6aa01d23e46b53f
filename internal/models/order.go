package models

// Order is one purchased product line, persisted after payment completes.
// ID is "<OrderID>-<line item id>" so redelivered events map to the same row.
type Order struct {
	ID              string           `json:"id"`
	OrderID         string           `json:"orderId"`
	CustomerEmail   string           `json:"customerEmail"`
	ProductName     string           `json:"productName"`
	SKU             string           `json:"sku"`
	PaintingOptions PaintingOptions  `json:"paintingOptions"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Timestamp       int64            `json:"timestamp"`
	Completed       bool             `json:"completed"`
	Price           string           `json:"price"`
}

type ShippingAddress struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
