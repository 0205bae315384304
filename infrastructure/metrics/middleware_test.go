package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/metrics"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg, "research")

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/items/1", "/api/v1/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	expected := `
# HELP research_http_requests_total HTTP requests by method, route, and status.
# TYPE research_http_requests_total counter
research_http_requests_total{method="GET",route="/api/v1/items/:id",status="200"} 2
research_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "research_http_requests_total"))

	count, err := testutil.GatherAndCount(reg, "research_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
