package middleware

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/devarchon/vibely/backend/internal/ratelimit"
	"github.com/labstack/echo/v4"
)

// RateLimitConfig configures the rate-limit middleware for a route group
type RateLimitConfig struct {
	Limiter *ratelimit.Limiter
	// Limit is the number of requests admitted per Window per key
	Limit  int64
	Window time.Duration
	// KeyFunc derives the counter key from the request. Defaults to the
	// route path plus client IP. The same key must always be used with
	// the same Window, or counter expiry is undefined.
	KeyFunc func(c echo.Context) string
	// FailClosed rejects requests with 503 when the counter store is
	// unreachable. The default fails open.
	FailClosed bool
}

// RateLimitMiddleware bounds requests per key per fixed window, answering
// 429 with a Retry-After hint on rejection.
func RateLimitMiddleware(cfg RateLimitConfig) echo.MiddlewareFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c echo.Context) string {
			return c.Path() + ":" + c.RealIP()
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := cfg.Limiter.Allow(c.Request().Context(), keyFunc(c), cfg.Limit, cfg.Window)
			if err != nil {
				if errors.Is(err, ratelimit.ErrUnavailable) {
					if cfg.FailClosed {
						return echo.NewHTTPError(http.StatusServiceUnavailable, "Rate limiter unavailable")
					}
					log.Printf("rate limiter unavailable, failing open: %v", err)
					return next(c)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			if !allowed {
				retryAfter := int(cfg.Window/time.Second) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}

			return next(c)
		}
	}
}
