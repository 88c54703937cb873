package router

import (
	"github.com/deppfellow/news-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// Prometheus scrape endpoint.
	r.GET("/metrics", h.Metrics.Scrape)
}
