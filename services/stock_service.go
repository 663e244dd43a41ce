package services

import (
	"context"
	"sync"
	"time"

	"tshirt-store/models"
)

// StockService caches per-product stock maps and answers the quantity
// guard's one question: how many pieces of this variant are available.
type StockService struct {
	fetcher CatalogFetcher
	ttl     time.Duration

	mu    sync.Mutex
	cache map[string]stockEntry
}

type stockEntry struct {
	variants map[models.VariantKey]int
	fetched  time.Time
}

func NewStockService(fetcher CatalogFetcher, ttl time.Duration) *StockService {
	return &StockService{
		fetcher: fetcher,
		ttl:     ttl,
		cache:   make(map[string]stockEntry),
	}
}

// Available reports the stock on hand for a variant. found is false when the
// variant does not exist in the product's catalog at all, which is a
// different state from zero stock.
func (s *StockService) Available(ctx context.Context, key models.VariantKey) (available int, found bool, err error) {
	variants, err := s.product(ctx, key.ProductID)
	if err != nil {
		return 0, false, err
	}
	available, found = variants[key]
	return available, found, nil
}

// Snapshot returns the cached stock map for a product, fetching if needed.
func (s *StockService) Snapshot(ctx context.Context, productID string) (map[models.VariantKey]int, error) {
	variants, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make(map[models.VariantKey]int, len(variants))
	for k, v := range variants {
		out[k] = v
	}
	return out, nil
}

// Invalidate drops the cached map for a product, forcing a refetch. Called
// after the server rejects a mutation for insufficient stock.
func (s *StockService) Invalidate(productID string) {
	s.mu.Lock()
	delete(s.cache, productID)
	s.mu.Unlock()
}

func (s *StockService) product(ctx context.Context, productID string) (map[models.VariantKey]int, error) {
	s.mu.Lock()
	entry, ok := s.cache[productID]
	s.mu.Unlock()
	if ok && time.Since(entry.fetched) < s.ttl {
		return entry.variants, nil
	}

	variants, err := s.fetcher.GetStock(ctx, productID)
	if err != nil {
		if ok {
			return entry.variants, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[productID] = stockEntry{variants: variants, fetched: time.Now()}
	s.mu.Unlock()
	return variants, nil
}
