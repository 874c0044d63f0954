package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

type fakeCatalogGateway struct {
	mu       sync.Mutex
	listings []models.Listing
	err      error
	calls    int
}

func (f *fakeCatalogGateway) ApprovedListings(context.Context) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Listing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

type memoryCacheRepo struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{store: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, pattern)
	return nil
}

func TestCatalogViewReturnsTotalAndDerivedView(t *testing.T) {
	gw := &fakeCatalogGateway{listings: []models.Listing{
		{ID: "1", Name: "Rex", Age: "5 years", Gender: "Male"},
		{ID: "2", Name: "Luna", Age: "3 years", Gender: "Female"},
	}}
	svc := NewCatalogService(gw, NewCacheService(nil, nil, time.Minute, zap.NewNop(), false), nil, zap.NewNop())

	view, total, err := svc.View(context.Background(), models.FilterCriteria{Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, view, 1)
	assert.Equal(t, "Luna", view[0].Name)
}

func TestCatalogViewParsesAgeOnIngest(t *testing.T) {
	gw := &fakeCatalogGateway{listings: []models.Listing{
		{ID: "1", Name: "Rex", Age: "5 years"},
		{ID: "2", Name: "Oreo", Age: "puppy"},
	}}
	svc := NewCatalogService(gw, NewCacheService(nil, nil, time.Minute, zap.NewNop(), false), nil, zap.NewNop())

	view, _, err := svc.View(context.Background(), models.FilterCriteria{})
	require.NoError(t, err)
	require.Len(t, view, 2)
	require.NotNil(t, view[0].AgeYears)
	assert.Equal(t, 5, *view[0].AgeYears)
	assert.Nil(t, view[1].AgeYears)
}

func TestCatalogSnapshotServedFromCache(t *testing.T) {
	gw := &fakeCatalogGateway{listings: []models.Listing{{ID: "1", Name: "Rex", Age: "5 years"}}}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := NewCatalogService(gw, cache, nil, zap.NewNop())

	_, _, err := svc.View(context.Background(), models.FilterCriteria{})
	require.NoError(t, err)
	_, _, err = svc.View(context.Background(), models.FilterCriteria{})
	require.NoError(t, err)

	assert.Equal(t, 1, gw.calls)
}

func TestCatalogCacheInvalidationForcesRefetch(t *testing.T) {
	repo := newMemoryCacheRepo()
	gw := &fakeCatalogGateway{listings: []models.Listing{{ID: "1", Name: "Rex", Age: "5 years"}}}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := NewCatalogService(gw, cache, nil, zap.NewNop())

	_, _, err := svc.View(context.Background(), models.FilterCriteria{})
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(context.Background(), catalogCacheKey))

	_, _, err = svc.View(context.Background(), models.FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, gw.calls)
}

func TestCatalogFind(t *testing.T) {
	gw := &fakeCatalogGateway{listings: []models.Listing{
		{ID: "1", Name: "Rex", OwnerEmail: "owner@gmail.com"},
	}}
	svc := NewCatalogService(gw, NewCacheService(nil, nil, time.Minute, zap.NewNop(), false), nil, zap.NewNop())

	listing, err := svc.Find(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Rex", listing.Name)

	_, err = svc.Find(context.Background(), "ghost")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCatalogViewPropagatesUpstreamError(t *testing.T) {
	gw := &fakeCatalogGateway{err: appErrors.ErrUpstream}
	svc := NewCatalogService(gw, NewCacheService(nil, nil, time.Minute, zap.NewNop(), false), nil, zap.NewNop())

	_, _, err := svc.View(context.Background(), models.FilterCriteria{})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}
