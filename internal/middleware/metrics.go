package middleware

import (
	"time"

	"github.com/deppfellow/news-api/internal/metrics"
	"github.com/labstack/echo/v4"
)

type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// RecordHTTP returns a middleware that records HTTP metrics
func (mm *MetricsMiddleware) RecordHTTP() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip metrics and health endpoints
			if metrics.ShouldSkipEndpoint(c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			// Use route pattern, not actual path
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			mm.metrics.RecordHTTPRequest(
				c.Request().Method,
				route,
				responseStatus(c, err),
				time.Since(start),
			)

			return err
		}
	}
}
