package services

import (
	"context"
	"time"

	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories"
	"github.com/yigit/htiportal/internal/pkg/cache"
	"github.com/yigit/htiportal/internal/pkg/logger"
)

const (
	programsCacheKey = "catalog:programs"
	sessionsCacheKey = "catalog:sessions"
)

// CatalogService serves programs and sessions through a read-through cache
type CatalogService struct {
	programs repositories.ProgramRepository
	sessions repositories.SessionRepository
	cache    cache.Cache
	ttl      time.Duration
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(programs repositories.ProgramRepository, sessions repositories.SessionRepository, c cache.Cache, ttl time.Duration) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogService{programs: programs, sessions: sessions, cache: c, ttl: ttl}
}

// ListPrograms returns all programs ordered by name.
func (s *CatalogService) ListPrograms(ctx context.Context) ([]*models.Program, error) {
	return readThrough(ctx, s, programsCacheKey, s.programs.List)
}

// ListSessions returns all sessions, active first.
func (s *CatalogService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return readThrough(ctx, s, sessionsCacheKey, s.sessions.List)
}

// readThrough serves key from the cache, loading and storing it on a miss.
// Cache failures are logged and never fail the request.
func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
	}
	if hit {
		return cached, nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if err := s.cache.SetJSON(ctx, key, items, s.ttl); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Catalog cache write failed")
	}
	return items, nil
}
