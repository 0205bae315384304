// Package http builds the outbound HTTP clients used for upstream APIs.
package http

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout               = 30 * time.Second
	DefaultMaxIdleConns          = 100
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultResponseHeaderTimeout = 30 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
)

// ClientConfig configures an HTTP client. Zero values take the defaults.
type ClientConfig struct {
	Timeout               time.Duration
	MaxIdleConnsPerHost   int
	ResponseHeaderTimeout time.Duration
	// SpanName labels the client spans, e.g. "brave.search".
	SpanName string
}

// NewClient returns a client whose transport records an OpenTelemetry
// client span per request.
func NewClient(cfg ClientConfig) *http.Client {
	timeout := orDefault(cfg.Timeout, DefaultTimeout)

	perHost := cfg.MaxIdleConnsPerHost
	if perHost <= 0 {
		perHost = DefaultMaxIdleConnsPerHost
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          DefaultMaxIdleConns,
		MaxIdleConnsPerHost:   perHost,
		IdleConnTimeout:       DefaultIdleConnTimeout,
		ResponseHeaderTimeout: orDefault(cfg.ResponseHeaderTimeout, DefaultResponseHeaderTimeout),
		TLSHandshakeTimeout:   DefaultTLSHandshakeTimeout,
		ForceAttemptHTTP2:     true,
	}

	var opts []otelhttp.Option
	if cfg.SpanName != "" {
		name := cfg.SpanName
		opts = append(opts, otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return name + " " + r.Method
		}))
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(base, opts...),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
