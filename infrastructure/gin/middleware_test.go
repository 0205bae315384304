package gin_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infragin "github.com/jonesrussell/north-cloud/company-research/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
)

func init() {
	ginpkg.SetMode(ginpkg.TestMode)
}

func TestRequestIDLoggerMiddleware_GeneratesHexID(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	id := w.Header().Get(infragin.RequestIDHeader)
	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestRequestIDLoggerMiddleware_PreservesInboundID(t *testing.T) {
	t.Parallel()

	const inbound = "trace-from-upstream-abc123"

	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))

	var seen string
	router.GET("/test", func(c *ginpkg.Context) {
		seen = c.GetString(infragin.RequestIDKey)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, inbound)
	w := serve(router, req)

	assert.Equal(t, inbound, w.Header().Get(infragin.RequestIDHeader))
	assert.Equal(t, inbound, seen)
}

func TestRequestIDLoggerMiddleware_ReplacesOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, oversized)

	got := serve(newTestRouter(), req).Header().Get(infragin.RequestIDHeader)
	assert.NotEqual(t, oversized, got)
	assert.Len(t, got, 32)
}

func TestRequestIDLoggerMiddleware_StoresLoggerInContext(t *testing.T) {
	t.Parallel()

	base := logger.NewNop()
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(base))

	var got logger.Logger
	router.GET("/test", func(c *ginpkg.Context) {
		got = logger.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	assert.Same(t, base, got, "nop With returns itself, so the stored logger is the base")
}

func TestRequestIDLoggerMiddleware_UniqueIDs(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := serve(router, httptest.NewRequest(http.MethodGet, "/test", http.NoBody)).Header().Get(infragin.RequestIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate request ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestCORSMiddleware_PreflightAllowedOrigin(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com"},
	}))
	router.GET("/test", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(router, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORSMiddleware_UnknownOriginGetsNoHeaders(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com"},
	}))
	router.GET("/test", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.net")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	t.Parallel()

	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/boom", func(*ginpkg.Context) { panic("boom") })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestServerBuilder_HealthReportsDegradedRedis(t *testing.T) {
	server := infragin.NewServerBuilder("company-research", 0).
		WithLogger(logger.NewNop()).
		WithVersion("test").
		WithRedisHealthCheck(func(context.Context) error { return errors.New("dial tcp: refused") }).
		Build()

	w := serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var resp infragin.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Status)
	assert.Equal(t, "company-research", resp.Service)
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Checks["redis"].Status)

	w = serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health/memory", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "heap_alloc_mb")
}

func TestServerBuilder_UnhealthyCheckReturns503(t *testing.T) {
	server := infragin.NewServerBuilder("company-research", 0).
		WithLogger(logger.NewNop()).
		WithHealthCheck("search", func() infragin.CheckResult {
			return infragin.CheckResult{Status: infragin.HealthStatusUnhealthy}
		}).
		Build()

	w := serve(server.Router(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func newTestRouter() *ginpkg.Engine {
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
