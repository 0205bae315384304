package telemetry_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/search"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
	"github.com/jonesrussell/north-cloud/company-research/internal/telemetry"
)

var (
	_ cache.Observer     = (*telemetry.Provider)(nil)
	_ search.Observer    = (*telemetry.Provider)(nil)
	_ selection.Observer = (*telemetry.Provider)(nil)
)

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Metrics)

	// Providers own their registry, so building a second one must not panic.
	assert.NotPanics(t, func() { telemetry.NewProvider() })
}

func TestProvider_Observers(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	p.ObserveCache("company_info", cache.TierMemory, cache.OutcomeHit)
	p.ObserveCache("company_info", cache.TierMemory, cache.OutcomeHit)
	p.ObserveCache("company_info", cache.TierRedis, cache.OutcomeMiss)
	p.ObserveSearch("salary", search.OutcomeError, 250*time.Millisecond)
	p.ObserveSelection("company_reviews", selection.OutcomeFallback, time.Second)
	p.RecordLinksScored(7)

	m := p.Metrics
	assert.InDelta(t, 2, testutil.ToFloat64(m.CacheEvents.WithLabelValues("company_info", "memory", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheEvents.WithLabelValues("company_info", "redis", "miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchRequests.WithLabelValues("salary", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Selections.WithLabelValues("company_reviews", "fallback")), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(m.LinksScored), 0)
}

func TestProvider_Handler(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	p.ObserveEndpoint("interview_prep", false, 4, 120*time.Millisecond)

	srv := httptest.NewServer(p.Handler())
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.Contains(text,
		`company_research_endpoint_duration_seconds_count{cached="false",endpoint="interview_prep"} 1`), text)
	assert.Contains(t, text, "go_goroutines")
}

func TestProvider_StartSpan(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	ctx, span := p.StartSpan(context.Background(), "research.test")
	defer span.End()

	assert.NotNil(t, ctx)
}
