package models

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Commit    bool   `json:"commit"`
}

// UpdateCartRequest sets the absolute quantity for a variant; zero removes
// the line. Commit flushes the debounced sync immediately (blur/enter).
type UpdateCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required,min=0"`
	Commit    bool   `json:"commit"`
}

// QuoteRequest carries the size-chart selection, keyed "Color-Size".
type QuoteRequest struct {
	Quantities map[string]int `json:"quantities" binding:"required"`
}

type QuoteResponse struct {
	TotalQuantity int    `json:"total_quantity"`
	IsBulk        bool   `json:"is_bulk"`
	PricePerItem  Money  `json:"price_per_item"`
	TotalPrice    Money  `json:"total_price"`
	PriceDisplay  string `json:"price_display"`
	TotalDisplay  string `json:"total_display"`
}

type AddressRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
}

type CheckoutRequest struct {
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	ShippingAddress AddressRequest  `json:"shipping_address" binding:"required"`
	BillingAddress  *AddressRequest `json:"billing_address"`
	Notes           string          `json:"notes"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}
