package services

import (
	"context"
	"sync"
	"time"

	"tshirt-store/models"
)

// CatalogFetcher is the slice of the catalog repository the services need.
type CatalogFetcher interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	GetStock(ctx context.Context, productID string) (map[models.VariantKey]int, error)
}

// CatalogService caches product briefs (name + pricing rule) so the cart
// engine can reprice lines without a round trip per mutation.
type CatalogService struct {
	fetcher CatalogFetcher
	ttl     time.Duration

	mu     sync.Mutex
	briefs map[string]briefEntry
}

type briefEntry struct {
	brief   models.ProductBrief
	fetched time.Time
}

func NewCatalogService(fetcher CatalogFetcher, ttl time.Duration) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		ttl:     ttl,
		briefs:  make(map[string]briefEntry),
	}
}

func (s *CatalogService) ProductBrief(ctx context.Context, productID string) (models.ProductBrief, error) {
	s.mu.Lock()
	entry, ok := s.briefs[productID]
	s.mu.Unlock()
	if ok && time.Since(entry.fetched) < s.ttl {
		return entry.brief, nil
	}

	product, err := s.fetcher.GetProduct(ctx, productID)
	if err != nil {
		if ok {
			// serve stale rather than fail a cart mutation
			return entry.brief, nil
		}
		return models.ProductBrief{}, err
	}

	brief := models.ProductBrief{
		ID:      product.ID,
		Name:    product.Name,
		Pricing: product.Pricing,
	}
	s.mu.Lock()
	s.briefs[productID] = briefEntry{brief: brief, fetched: time.Now()}
	s.mu.Unlock()
	return brief, nil
}
