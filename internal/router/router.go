// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/news-api/internal/handler"
	"github.com/deppfellow/news-api/internal/middleware"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance: global error handler, middleware
// stack, system routes and the /api routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	// Every error returned by a handler or middleware ends up here.
	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	// Order matters: the request id feeds tracing and the context logger,
	// which the request logger and handlers read.
	router.Use(
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Metrics.RecordHTTP(),
		mws.Global.Recover(),
		mws.Global.Secure(),
		mws.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerAPIRoutes(api, h)

	return router
}
