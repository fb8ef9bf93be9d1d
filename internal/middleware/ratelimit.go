package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/railwatch/train-issue-service/internal/config"
)

// RateLimit returns a fixed-window limiter keyed by client IP and route,
// intended for the unauthenticated auth endpoints where credential
// stuffing and OTP guessing would otherwise be free. The counter lives in
// Redis so limits hold across replicas. When disabled or when no Redis
// client is available the middleware is a passthrough. Redis errors fail
// open: a broken limiter must not take the API down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	// A nonsensical limit or window is treated like a disabled limiter
	// rather than a reason to crash request handling.
	if !cfg.Enabled || rdb == nil || cfg.Limit < 1 || cfg.Window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Bucket number in nanoseconds so sub-second windows divide cleanly.
			bucket := time.Now().UnixNano() / int64(cfg.Window)
			key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), bucket)

			ctx := c.Request().Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if count > int64(cfg.Limit) {
				retryAfter := int((cfg.Window + time.Second - 1) / time.Second) // round up
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "Too many requests"})
			}
			return next(c)
		}
	}
}
