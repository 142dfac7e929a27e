package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type cacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService is a read-through cache for hot list endpoints. It degrades
// to a no-op when no backend is configured, so callers never branch on
// whether caching is enabled.
type CacheService struct {
	repo    cacheRepository
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService
}

// NewCacheService constructs a CacheService. A nil repo disables caching.
func NewCacheService(repo cacheRepository, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, ttl: ttl, logger: logger, metrics: metrics}
}

// Enabled reports whether a cache backend is attached.
func (s *CacheService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Get loads a cached value into dest. Misses come back as ErrCacheMiss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return appErrors.ErrCacheMiss
	}
	if err := s.repo.Get(ctx, key, dest); err != nil {
		if s.metrics != nil {
			s.metrics.CacheMiss()
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.CacheHit()
	}
	return nil
}

// Set stores a value under the configured TTL. Cache write failures are
// logged and swallowed; the caller already has the data.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every key matching the pattern. Failures are logged and
// swallowed; stale entries expire on their own TTL.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
