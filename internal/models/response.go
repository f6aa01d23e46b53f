package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type CartResponse struct {
	CartID string         `json:"cartId"`
	Items  []CartLineItem `json:"items"`
	Count  int            `json:"count"`
	Total  string         `json:"total"`
}

type CheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

type PremadeProductListResponse struct {
	Products []PremadeProduct `json:"products"`
}

type PremadeProductResponse struct {
	Product PremadeProduct `json:"product"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}
