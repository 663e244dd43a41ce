package repositories

import (
	"context"
	"net/url"

	"tshirt-store/models"
)

// CartRepository talks to the authoritative remote cart. All methods are
// scoped to an anonymous session id, which the upstream reads from the
// session_id cookie.
type CartRepository struct {
	u *Upstream
}

func NewCartRepository(u *Upstream) *CartRepository {
	return &CartRepository{u: u}
}

type wireCartItem struct {
	ProductID   string  `json:"product_id"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type wireCart struct {
	Items []wireCartItem `json:"items"`
	Total float64        `json:"total"`
}

type cartMutation struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (r *CartRepository) Get(ctx context.Context, sessionID string) (models.Cart, error) {
	var wire wireCart
	if err := r.u.doJSON(ctx, "GET", "/cart", sessionID, nil, &wire); err != nil {
		return models.Cart{}, err
	}

	cart := models.Cart{Total: models.MoneyFromRupees(wire.Total)}
	for _, it := range wire.Items {
		unit := models.MoneyFromRupees(it.UnitPrice)
		cart.Items = append(cart.Items, models.CartLine{
			VariantKey: models.VariantKey{
				ProductID: it.ProductID,
				Color:     it.Color,
				Size:      it.Size,
			},
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   unit,
			TotalPrice:  unit.Mul(it.Quantity),
		})
		cart.TotalQuantity += it.Quantity
	}
	return cart, nil
}

func (r *CartRepository) Add(ctx context.Context, sessionID string, key models.VariantKey, quantity int) error {
	body := cartMutation{
		ProductID: key.ProductID,
		Color:     key.Color,
		Size:      key.Size,
		Quantity:  quantity,
	}
	return r.u.doJSON(ctx, "POST", "/cart/add", sessionID, body, nil)
}

func (r *CartRepository) Update(ctx context.Context, sessionID string, key models.VariantKey, quantity int) error {
	body := cartMutation{
		ProductID: key.ProductID,
		Color:     key.Color,
		Size:      key.Size,
		Quantity:  quantity,
	}
	return r.u.doJSON(ctx, "PUT", "/cart/update", sessionID, body, nil)
}

func (r *CartRepository) Remove(ctx context.Context, sessionID string, key models.VariantKey) error {
	q := url.Values{}
	q.Set("color", key.Color)
	q.Set("size", key.Size)
	path := "/cart/remove/" + url.PathEscape(key.ProductID) + "?" + q.Encode()
	return r.u.doJSON(ctx, "DELETE", path, sessionID, nil, nil)
}
