package handler

import (
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

// EndpointHandler serves GET /api, the API's own documentation.
type EndpointHandler struct {
	Handler
	endpoints EndpointService
}

func NewEndpointHandler(s *server.Server, endpoints EndpointService) *EndpointHandler {
	return &EndpointHandler{
		Handler:   NewHandler(s),
		endpoints: endpoints,
	}
}

func (h *EndpointHandler) ListEndpoints(_ echo.Context, _ *model.EmptyRequest) (EndpointsResponse, error) {
	return EndpointsResponse{EndPoints: h.endpoints.ListEndpoints()}, nil
}
