package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

// catalogCacheKey stores the approved-listings snapshot. Moderation
// invalidates it after successful mutations.
const catalogCacheKey = "catalog:approved"

type catalogGateway interface {
	ApprovedListings(ctx context.Context) ([]models.Listing, error)
}

// CatalogService serves point-in-time views of the approved catalog:
// each read is a snapshot (optionally from cache) run through the
// filter/sort engine.
type CatalogService struct {
	gateway catalogGateway
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(gw catalogGateway, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{gateway: gw, cache: cache, metrics: metrics, logger: logger}
}

// View fetches the approved catalog and derives the requested view.
// The full snapshot count and the view itself are both returned so the
// caller can display "N of M dogs".
func (s *CatalogService) View(ctx context.Context, criteria models.FilterCriteria) ([]models.Listing, int, error) {
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	return DeriveView(catalog, criteria), len(catalog), nil
}

// Find locates a single approved listing by id within the current
// snapshot. Submission uses it to resolve the listing owner for the
// self-adoption guard.
func (s *CatalogService) Find(ctx context.Context, listingID string) (*models.Listing, error) {
	catalog, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == listingID {
			listing := catalog[i]
			return &listing, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "listing not found")
}

func (s *CatalogService) snapshot(ctx context.Context) ([]models.Listing, error) {
	var cached []models.Listing
	if hit, _ := s.cache.Get(ctx, catalogCacheKey, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	listings, err := s.gateway.ApprovedListings(ctx)
	s.metrics.ObserveUpstreamCall("approved_listings", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	for i := range listings {
		listings[i] = listings[i].WithAgeYears()
	}

	if err := s.cache.Set(ctx, catalogCacheKey, listings, 0); err != nil {
		s.logger.Warn("catalog snapshot not cached", zap.Error(err))
	}

	return listings, nil
}
