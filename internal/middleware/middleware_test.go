package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/news-api/internal/config"
	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/metrics"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(out *bytes.Buffer) *server.Server {
	logger := zerolog.New(out)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger:  &logger,
		Metrics: metrics.NewWithRegistry(prometheus.NewRegistry(), &logger),
	}
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errs.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"application error", errs.UsernameNotFound(), http.StatusNotFound, "username not found"},
		{"wrapped application error", fmt.Errorf("loading: %w", errs.IDNotFound()), http.StatusNotFound, "id not found"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "route not found"},
		{"wrong method", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
		{"echo bad request", echo.NewHTTPError(http.StatusBadRequest, "syntax"), http.StatusBadRequest, "bad request"},
		{"payload too large", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "request entity too large"},
		{"invalid text representation", &pgconn.PgError{Code: "22P02"}, http.StatusBadRequest, "bad request"},
		{"unknown author", &pgconn.PgError{Code: "23503", Detail: `Key (author)=(x) is not present in table "users".`}, http.StatusNotFound, "username not found"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			global := NewGlobalMiddlewares(newTestServer(&logs))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decodeMsg(t, rec))
		})
	}
}

func TestGlobalErrorHandlerLogsOriginalError(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(&logs)
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(LoggerKey, s.Logger)

	global.GlobalErrorHandler(errors.New("connection reset by peer"), c)

	assert.Contains(t, logs.String(), "connection reset by peer")
	assert.Contains(t, logs.String(), `"level":"error"`)
}

func TestGlobalErrorHandlerSkipsCommittedResponse(t *testing.T) {
	var logs bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(&logs))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	global.GlobalErrorHandler(errs.IDNotFound(), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContext(t *testing.T) {
	var logs bytes.Buffer
	enhancer := NewContextEnhancer(newTestServer(&logs))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/topics", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	handler := enhancer.EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo context")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return nil
	})
	require.NoError(t, handler(c))

	out := logs.String()
	assert.Contains(t, out, "from echo context")
	assert.Contains(t, out, "from request context")
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte(`"request_id":"req-1"`)))
}

func TestGetLoggerWithoutEnhancer(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	logger := GetLogger(c)
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestMetricsMiddleware(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(&logs)
	mm := NewMetricsMiddleware(s.Metrics)

	e := echo.New()
	e.Use(mm.RecordHTTP())
	e.GET("/api/articles/:article_id", func(c echo.Context) error {
		return errs.IDNotFound()
	})
	e.GET("/status", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/articles/999", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(
		s.Metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/articles/:article_id", "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(s.Metrics.HTTPRequestsTotal))
}

func TestResponseStatus(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	assert.Equal(t, http.StatusNoContent, responseStatus(c, nil))
	assert.Equal(t, http.StatusBadRequest, responseStatus(c, &pgconn.PgError{Code: "22003"}))
	assert.Equal(t, http.StatusNotFound, responseStatus(c, echo.ErrNotFound))
}
