// Package telemetry holds the service's Prometheus metrics and tracer.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "company-research"
	// Namespace prefixes every metric this service exports.
	Namespace = "company_research"
)

// Metrics holds all Prometheus metrics for the research service.
type Metrics struct {
	// Cache
	CacheEvents *prometheus.CounterVec

	// Brave search
	SearchRequests *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec

	// Link selection
	Selections        *prometheus.CounterVec
	SelectionDuration *prometheus.HistogramVec
	LinksScored       prometheus.Counter

	// Endpoints
	EndpointDuration *prometheus.HistogramVec
	EndpointLinks    *prometheus.HistogramVec
}

// Provider wraps the tracer and metrics. Each provider owns its registry.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider creates a telemetry provider on a fresh registry.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(reg)),
		registry: reg,
	}
}

func initMetrics(factory promauto.Factory) *Metrics {
	m := &Metrics{}
	initCacheMetrics(factory, m)
	initSearchMetrics(factory, m)
	initSelectionMetrics(factory, m)
	initEndpointMetrics(factory, m)
	return m
}

func initCacheMetrics(factory promauto.Factory, m *Metrics) {
	m.CacheEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_events_total",
		Help:      "Request cache hits, misses and sets by prefix and tier",
	}, []string{"prefix", "tier", "outcome"})
}

func initSearchMetrics(factory promauto.Factory, m *Metrics) {
	m.SearchRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "search_requests_total",
		Help:      "Brave search requests by category and outcome",
	}, []string{"category", "outcome"})

	m.SearchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_request_duration_seconds",
		Help:      "Brave search latency including retries",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"category"})
}

func initSelectionMetrics(factory promauto.Factory, m *Metrics) {
	m.Selections = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "selections_total",
		Help:      "Model-assisted selections by use case and outcome (model, fallback, empty)",
	}, []string{"use_case", "outcome"})

	m.SelectionDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "selection_duration_seconds",
		Help:      "Time spent selecting links, including the model call",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 15, 30},
	}, []string{"use_case"})

	m.LinksScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "links_scored_total",
		Help:      "Links run through the link scorer",
	})
}

func initEndpointMetrics(factory promauto.Factory, m *Metrics) {
	m.EndpointDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "endpoint_duration_seconds",
		Help:      "Research pipeline duration by endpoint and cache status",
		Buckets:   []float64{0.005, 0.05, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
	}, []string{"endpoint", "cached"})

	m.EndpointLinks = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "endpoint_links_returned",
		Help:      "Links returned per research response",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 20},
	}, []string{"endpoint"})
}

// Registry is the registerer for collectors owned by other packages.
func (p *Provider) Registry() prometheus.Registerer {
	return p.registry
}

// Gatherer exposes the registry for tests and scrapers.
func (p *Provider) Gatherer() prometheus.Gatherer {
	return p.registry
}

// Handler returns the Prometheus HTTP handler for this provider's registry.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// ObserveCache records a request cache event.
func (p *Provider) ObserveCache(prefix, tier, outcome string) {
	p.Metrics.CacheEvents.WithLabelValues(prefix, tier, outcome).Inc()
}

// ObserveSearch records one Brave search call.
func (p *Provider) ObserveSearch(category, outcome string, elapsed time.Duration) {
	p.Metrics.SearchRequests.WithLabelValues(category, outcome).Inc()
	p.Metrics.SearchDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}

// ObserveSelection records one model-assisted selection.
func (p *Provider) ObserveSelection(useCase, outcome string, elapsed time.Duration) {
	p.Metrics.Selections.WithLabelValues(useCase, outcome).Inc()
	p.Metrics.SelectionDuration.WithLabelValues(useCase).Observe(elapsed.Seconds())
}

// ObserveEndpoint records a completed research request.
func (p *Provider) ObserveEndpoint(endpoint string, cached bool, links int, elapsed time.Duration) {
	status := "false"
	if cached {
		status = "true"
	}
	p.Metrics.EndpointDuration.WithLabelValues(endpoint, status).Observe(elapsed.Seconds())
	p.Metrics.EndpointLinks.WithLabelValues(endpoint).Observe(float64(links))
}

// RecordLinksScored adds n to the scored-links counter.
func (p *Provider) RecordLinksScored(n int) {
	p.Metrics.LinksScored.Add(float64(n))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
