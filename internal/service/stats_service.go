package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/onestep-labs/urban-solve/internal/persistence"
)

const statsCacheKey = "urban-solve:admin:stats"

// StatsCache is the slice of Redis the stats service needs.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisStatsCache struct {
	redis *persistence.Redis
}

// NewRedisStatsCache adapts a Redis connection to StatsCache. A nil or
// unconnected Redis yields a nil cache, which disables caching.
func NewRedisStatsCache(redis *persistence.Redis) StatsCache {
	if redis == nil || redis.Client == nil {
		return nil
	}
	return &redisStatsCache{redis: redis}
}

func (c *redisStatsCache) Get(ctx context.Context, key string) (string, error) {
	return c.redis.Client.Get(ctx, key).Result()
}

func (c *redisStatsCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redis.Client.Set(ctx, key, value, ttl).Err()
}

func (c *redisStatsCache) Del(ctx context.Context, key string) error {
	return c.redis.Client.Del(ctx, key).Err()
}

// StatsService serves aggregate complaint counts, caching them briefly so
// dashboard polling does not hammer the complaint table.
type StatsService struct {
	complaints *ComplaintService
	cache      StatsCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewStatsService constructs the service. A nil cache or zero TTL disables
// caching.
func NewStatsService(complaints *ComplaintService, cache StatsCache, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{
		complaints: complaints,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Stats returns aggregate complaint counts, served from cache when fresh.
func (s *StatsService) Stats(ctx context.Context) (Stats, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	records, err := s.complaints.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := ComputeStats(records)
	s.toCache(ctx, stats)
	return stats, nil
}

// Invalidate drops the cached stats; called after writes that change counts.
func (s *StatsService) Invalidate(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey); err != nil {
		s.logger.Debug("stats cache invalidate failed", zap.Error(err))
	}
}

func (s *StatsService) fromCache(ctx context.Context) (Stats, bool) {
	if !s.cacheEnabled() {
		return Stats{}, false
	}
	raw, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		return Stats{}, false
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return Stats{}, false
	}
	return stats, true
}

func (s *StatsService) toCache(ctx context.Context, stats Stats) {
	if !s.cacheEnabled() {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, string(raw), s.cacheTTL); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *StatsService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}
