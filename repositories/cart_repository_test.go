package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tshirt-store/models"
)

func TestCartGetConvertsToPaise(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_id")
		if err != nil || cookie.Value != "sess-1" {
			t.Errorf("missing session cookie: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"product_id": "tee-classic", "color": "Black", "size": "M",
				 "quantity": 3, "product_name": "Classic Tee",
				 "unit_price": 319.0, "total_price": 957.0}
			],
			"total": 957.0
		}`))
	}))
	t.Cleanup(server.Close)

	repo := NewCartRepository(NewUpstream(server.URL, 2*time.Second))
	cart, err := repo.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("items = %+v", cart.Items)
	}
	line := cart.Items[0]
	if line.UnitPrice != 31900 || line.TotalPrice != 95700 {
		t.Fatalf("line = %+v, want paise amounts", line)
	}
	if cart.Total != 95700 || cart.TotalQuantity != 3 {
		t.Fatalf("cart = %+v", cart)
	}
}

func TestCartAddSendsPayload(t *testing.T) {
	var got cartMutation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/cart/add" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	repo := NewCartRepository(NewUpstream(server.URL, 2*time.Second))
	key := models.VariantKey{ProductID: "tee-classic", Color: "Sage Green", Size: "M"}
	if err := repo.Add(context.Background(), "sess-1", key, 5); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ProductID != "tee-classic" || got.Color != "Sage Green" || got.Size != "M" || got.Quantity != 5 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestStockRejectionBecomesStockError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Only 8 pieces available"}`))
	}))
	t.Cleanup(server.Close)

	repo := NewCartRepository(NewUpstream(server.URL, 2*time.Second))
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	err := repo.Update(context.Background(), "sess-1", key, 12)

	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want StockError", err)
	}
	if stockErr.Available != 8 {
		t.Fatalf("Available = %d, want 8 parsed from the message", stockErr.Available)
	}
}

func TestValidationMessageMentioningAvailableIsNotStockError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "color not available"}`))
	}))
	t.Cleanup(server.Close)

	repo := NewCartRepository(NewUpstream(server.URL, 2*time.Second))
	key := models.VariantKey{ProductID: "tee-classic", Color: "Chartreuse", Size: "M"}
	err := repo.Update(context.Background(), "sess-1", key, 2)

	// no stock wording and no count: this is plain validation, and must not
	// trigger a shortfall revert
	var stockErr *StockError
	if errors.As(err, &stockErr) {
		t.Fatalf("err = %v, must not classify as StockError", err)
	}
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.StatusCode != 400 {
		t.Fatalf("err = %v, want UpstreamError 400", err)
	}
}

func TestNonStockFailureBecomesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Product not found"}`))
	}))
	t.Cleanup(server.Close)

	repo := NewCartRepository(NewUpstream(server.URL, 2*time.Second))
	key := models.VariantKey{ProductID: "nope", Color: "Black", Size: "M"}
	err := repo.Remove(context.Background(), "sess-1", key)

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstreamErr.StatusCode != 404 || upstreamErr.Message != "Product not found" {
		t.Fatalf("err = %+v", upstreamErr)
	}
}
