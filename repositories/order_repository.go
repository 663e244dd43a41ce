package repositories

import (
	"context"

	"tshirt-store/models"
)

type OrderRepository struct {
	u *Upstream
}

func NewOrderRepository(u *Upstream) *OrderRepository {
	return &OrderRepository{u: u}
}

type wireOrderSummary struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	TotalAmount    float64 `json:"total_amount"`
	IsBulkOrder    bool    `json:"is_bulk_order"`
}

func (w wireOrderSummary) toModel() models.OrderSummary {
	return models.OrderSummary{
		Subtotal:    models.MoneyFromRupees(w.Subtotal),
		TaxAmount:   models.MoneyFromRupees(w.TaxAmount),
		Shipping:    models.MoneyFromRupees(w.ShippingAmount),
		TotalAmount: models.MoneyFromRupees(w.TotalAmount),
		IsBulkOrder: w.IsBulkOrder,
	}
}

func itemsPayload(items []models.CartLine) []cartMutation {
	out := make([]cartMutation, 0, len(items))
	for _, it := range items {
		out = append(out, cartMutation{
			ProductID: it.ProductID,
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return out
}

// Calculate asks the upstream to price the given items, including tax and
// shipping. The upstream's figures are authoritative at checkout.
func (r *OrderRepository) Calculate(ctx context.Context, sessionID string, items []models.CartLine) (models.OrderSummary, error) {
	var wire wireOrderSummary
	if err := r.u.doJSON(ctx, "POST", "/orders/calculate", sessionID, itemsPayload(items), &wire); err != nil {
		return models.OrderSummary{}, err
	}
	return wire.toModel(), nil
}

type wireOrderCreate struct {
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	Items           []cartMutation         `json:"items"`
	ShippingAddress models.AddressRequest  `json:"shipping_address"`
	BillingAddress  *models.AddressRequest `json:"billing_address,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
}

type wireOrder struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

func (r *OrderRepository) Create(ctx context.Context, sessionID string, req models.CheckoutRequest, items []models.CartLine) (models.OrderConfirmation, error) {
	body := wireOrderCreate{
		Email:           req.Email,
		Phone:           req.Phone,
		Items:           itemsPayload(items),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
	}
	var wire wireOrder
	if err := r.u.doJSON(ctx, "POST", "/orders", sessionID, body, &wire); err != nil {
		return models.OrderConfirmation{}, err
	}
	return models.OrderConfirmation{
		OrderID:     wire.ID,
		Status:      wire.Status,
		TotalAmount: models.MoneyFromRupees(wire.TotalAmount),
	}, nil
}
