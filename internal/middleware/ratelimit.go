package middleware

import (
	"net/http"

	"SomnoScan/internal/service/ratelimit"
	xhttp "SomnoScan/pkg/http"

	"github.com/labstack/echo/v4"
)

// RateLimit caps requests per client IP with a token bucket. Raster builds
// walk entire recordings, so an unthrottled client can saturate the service.
func RateLimit(l *ratelimit.Limiter, capacity, refillPerSec float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP(), capacity, refillPerSec) {
				return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
