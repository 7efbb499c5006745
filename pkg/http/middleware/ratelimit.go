package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenLimiter consumes one token for key from a bucket of the given shape.
type TokenLimiter interface {
	Allow(key string, capacity, refillPerSec float64) bool
}

// RateLimit rejects requests with 429 once the client IP has drained its bucket.
func RateLimit(l TokenLimiter, capacity, refillPerSec float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP(), capacity, refillPerSec) {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}
