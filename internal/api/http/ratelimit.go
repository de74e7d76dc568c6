package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/persistence"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// RateLimiter bounds request volume per caller IP using Redis counters.
// When Redis is unreachable requests are allowed through with a warning;
// availability wins over throttling here.
type RateLimiter struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewRateLimiter constructs the limiter.
func NewRateLimiter(redis *persistence.Redis, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{redis: redis, logger: logger}
}

// Limit returns middleware allowing max requests per window per IP for the
// named scope.
func (rl *RateLimiter) Limit(scope string, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.redis == nil || rl.redis.Client == nil || max <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.IP())
		ctx := c.Context()

		count, err := rl.redis.Client.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rl.redis.Client.Expire(ctx, key, window).Err(); err != nil {
				rl.logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(max) {
			return apperrors.NewRateLimited("too many requests, please try again later")
		}
		return c.Next()
	}
}
