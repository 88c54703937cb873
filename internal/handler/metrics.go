package handler

import (
	"net/http"

	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the prometheus scrape endpoint.
type MetricsHandler struct {
	Handler
	exporter http.Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{
		Handler:  NewHandler(s),
		exporter: promhttp.Handler(),
	}
}

// Scrape refreshes the pool gauges, then writes every registered collector.
func (h *MetricsHandler) Scrape(c echo.Context) error {
	if h.server.DB != nil && h.server.DB.Pool != nil {
		h.server.Metrics.UpdatePoolStats(h.server.DB.Pool.Stat())
	}

	h.exporter.ServeHTTP(c.Response(), c.Request())
	return nil
}
