package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tshirt-store/models"
)

type fakeFetcher struct {
	mu         sync.Mutex
	stock      map[models.VariantKey]int
	stockErr   error
	stockCalls int
}

func (f *fakeFetcher) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return models.Product{ID: id, Name: "Classic Tee", Pricing: models.PricingRule{
		BulkThreshold: 15, BulkPrice: 27900, RegularPrice: 31900,
	}}, nil
}

func (f *fakeFetcher) GetStock(ctx context.Context, productID string) (map[models.VariantKey]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	out := make(map[models.VariantKey]int, len(f.stock))
	for k, v := range f.stock {
		out[k] = v
	}
	return out, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stockCalls
}

func TestStockServiceCachesWithinTTL(t *testing.T) {
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	fetcher := &fakeFetcher{stock: map[models.VariantKey]int{key: 8}}
	svc := NewStockService(fetcher, time.Minute)
	ctx := context.Background()

	available, found, err := svc.Available(ctx, key)
	if err != nil || !found || available != 8 {
		t.Fatalf("Available = %d/%v/%v, want 8", available, found, err)
	}
	svc.Available(ctx, key)
	svc.Available(ctx, key)

	if fetcher.calls() != 1 {
		t.Fatalf("fetch calls = %d, want 1 within the TTL", fetcher.calls())
	}
}

func TestStockServiceUnknownVariant(t *testing.T) {
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	fetcher := &fakeFetcher{stock: map[models.VariantKey]int{key: 8}}
	svc := NewStockService(fetcher, time.Minute)

	// a variant missing from the catalog is not the same as zero stock
	_, found, err := svc.Available(context.Background(), models.VariantKey{
		ProductID: "tee-classic", Color: "Magenta", Size: "XXL",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("unknown variant must report found=false")
	}
}

func TestStockServiceInvalidateForcesRefetch(t *testing.T) {
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	fetcher := &fakeFetcher{stock: map[models.VariantKey]int{key: 8}}
	svc := NewStockService(fetcher, time.Minute)
	ctx := context.Background()

	svc.Available(ctx, key)
	svc.Invalidate("tee-classic")
	svc.Available(ctx, key)

	if fetcher.calls() != 2 {
		t.Fatalf("fetch calls = %d, want refetch after invalidate", fetcher.calls())
	}
}

func TestStockServiceServesStaleOnError(t *testing.T) {
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	fetcher := &fakeFetcher{stock: map[models.VariantKey]int{key: 8}}
	svc := NewStockService(fetcher, time.Nanosecond)
	ctx := context.Background()

	if _, _, err := svc.Available(ctx, key); err != nil {
		t.Fatalf("prime fetch failed: %v", err)
	}

	fetcher.mu.Lock()
	fetcher.stockErr = errors.New("upstream down")
	fetcher.mu.Unlock()

	available, found, err := svc.Available(ctx, key)
	if err != nil || !found || available != 8 {
		t.Fatalf("Available = %d/%v/%v, want stale value 8", available, found, err)
	}
}

func TestStockServiceSnapshotCopies(t *testing.T) {
	key := models.VariantKey{ProductID: "tee-classic", Color: "Black", Size: "M"}
	fetcher := &fakeFetcher{stock: map[models.VariantKey]int{key: 8}}
	svc := NewStockService(fetcher, time.Minute)
	ctx := context.Background()

	snap, err := svc.Snapshot(ctx, "tee-classic")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	snap[key] = 999

	available, _, _ := svc.Available(ctx, key)
	if available != 8 {
		t.Fatal("mutating a snapshot must not touch the cache")
	}
}
