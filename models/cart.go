package models

import "fmt"

// VariantKey uniquely identifies a purchasable unit: a product in one
// specific color and size.
type VariantKey struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

func (k VariantKey) String() string {
	return fmt.Sprintf("%s/%s-%s", k.ProductID, k.Color, k.Size)
}

// CartLine is one cart entry. TotalPrice is always derived from
// UnitPrice × Quantity, never stored independently.
type CartLine struct {
	VariantKey
	ProductName  string `json:"product_name,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    Money  `json:"unit_price"`
	TotalPrice   Money  `json:"total_price"`
	PriceDisplay string `json:"unit_price_display,omitempty"`
}

// Cart is a point-in-time snapshot of the local cart. Total always equals
// the sum of the line totals at the moment the snapshot was taken.
type Cart struct {
	Items         []CartLine `json:"items"`
	Total         Money      `json:"total"`
	TotalDisplay  string     `json:"total_display,omitempty"`
	TotalQuantity int        `json:"total_quantity"`
	IsBulk        bool       `json:"is_bulk"`
}

// CartBadge is the lightweight summary independent UI regions (the header
// badge) subscribe to.
type CartBadge struct {
	Items         int   `json:"items"`
	TotalQuantity int   `json:"total_quantity"`
	Total         Money `json:"total"`
}

// Notice is a user-facing message produced by background reconciliation,
// delivered to the page on the next cart fetch.
type Notice struct {
	Level     string      `json:"level"`
	Message   string      `json:"message"`
	Variant   *VariantKey `json:"variant,omitempty"`
	Available int         `json:"available,omitempty"`
	Requested int         `json:"requested,omitempty"`
}

const (
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// OrderSummary is the server-computed checkout breakdown.
type OrderSummary struct {
	Subtotal    Money `json:"subtotal"`
	TaxAmount   Money `json:"tax_amount"`
	Shipping    Money `json:"shipping_amount"`
	TotalAmount Money `json:"total_amount"`
	IsBulkOrder bool  `json:"is_bulk_order"`
}

// OrderConfirmation is returned after the upstream accepts an order.
type OrderConfirmation struct {
	OrderID     string     `json:"order_id"`
	Status      string     `json:"status"`
	TotalAmount Money      `json:"total_amount"`
	Items       []CartLine `json:"items,omitempty"`
}
