package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

type LimiterConfig struct {
	RequestsPerMinute int
	OnLimit           fiber.Handler
}

// NewLimiter is a sliding window limiter per client IP. Counters live in
// redis when rdb is non-nil, otherwise in process memory.
func NewLimiter(cfg LimiterConfig, rdb *redis.Client) fiber.Handler {
	max := cfg.RequestsPerMinute
	if max <= 0 {
		max = 20
	}

	lc := limiter.Config{
		Max:               max,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached:      cfg.OnLimit,
	}
	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	}
	return limiter.New(lc)
}
