package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/onestep-labs/urban-solve/internal/persistence"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

const (
	rateLimitKeyPrefix = "urban-solve:submissions"
	rateLimitWindow    = 24 * time.Hour
)

// RateLimitStore is the slice of Redis the submission limiter needs.
type RateLimitStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type redisRateLimitStore struct {
	redis *persistence.Redis
}

// NewRedisRateLimitStore adapts a Redis connection to RateLimitStore. A nil
// or unconnected Redis yields a nil store, which disables limiting.
func NewRedisRateLimitStore(redis *persistence.Redis) RateLimitStore {
	if redis == nil || redis.Client == nil {
		return nil
	}
	return &redisRateLimitStore{redis: redis}
}

func (s *redisRateLimitStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.redis.Client.Incr(ctx, key).Result()
}

func (s *redisRateLimitStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.redis.Client.Expire(ctx, key, ttl).Err()
}

func (s *redisRateLimitStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.redis.Client.TTL(ctx, key).Result()
}

// SubmissionRateLimiter bounds how many complaints a client may file per
// 24-hour window, counted per client IP. A first increment sets the window
// TTL; exceeding the limit yields 429 with the remaining wait. When the
// store is unreachable the request is allowed through.
func SubmissionRateLimiter(store RateLimitStore, limit int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil || limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("%s:%s", rateLimitKeyPrefix, c.IP())

		count, err := store.Incr(ctx, key)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := store.Expire(ctx, key, rateLimitWindow); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(limit) {
			retryAfter, err := store.TTL(ctx, key)
			if err != nil || retryAfter <= 0 {
				// a lost first-hit EXPIRE leaves no TTL on the key;
				// report the full window rather than a negative wait
				retryAfter = rateLimitWindow
			}
			return apperrors.NewDomainError(
				"RATE_LIMITED",
				fmt.Sprintf("submission limit reached, retry in %s", retryAfter.Round(time.Second)),
				http.StatusTooManyRequests,
				map[string]any{"retry_after_seconds": int(retryAfter.Seconds())},
			)
		}
		return c.Next()
	}
}
