// Package search talks to the Brave Web Search API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/circuitbreaker"
	infraerrors "github.com/jonesrussell/north-cloud/company-research/infrastructure/errors"
	infrahttp "github.com/jonesrussell/north-cloud/company-research/infrastructure/http"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/retry"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// ErrMissingAPIKey is returned before any network call when no key is set.
var ErrMissingAPIKey = errors.New("brave search: api key not configured")

// CategorySocial restricts results to social platform URLs.
const CategorySocial = "social"

// Search outcomes reported to the Observer.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

const (
	searchPath         = "/res/v1/web/search"
	defaultBaseURL     = "https://api.search.brave.com"
	defaultResultCount = 5
	defaultTimeout     = 10 * time.Second
	defaultRateLimit   = 10
	defaultBurst       = 10
)

var socialPlatforms = []string{
	"linkedin.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"facebook.com",
	"youtube.com",
}

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// Searcher runs one web search.
type Searcher interface {
	Search(ctx context.Context, query, category string) ([]domain.Link, error)
}

// Observer receives one call per Search.
type Observer interface {
	ObserveSearch(category, outcome string, elapsed time.Duration)
}

// Config configures the Brave client.
type Config struct {
	APIKey      string
	BaseURL     string
	ResultCount int
	Timeout     time.Duration
	RateLimit   float64
	Burst       int
	MaxRetries  int
}

// Client is a rate-limited Brave Web Search client. Calls run inside a
// circuit breaker and are retried on 429, 5xx and transient network errors.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.Breaker
	retryCfg   retry.Config
	observer   Observer
	log        logger.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient replaces the default traced client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the default backoff.
func WithRetryConfig(rc retry.Config) Option {
	return func(c *Client) { c.retryCfg = rc }
}

func NewClient(cfg Config, log logger.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ResultCount <= 0 {
		cfg.ResultCount = defaultResultCount
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	log = log.With(logger.Component("brave-search"))

	retryCfg := retry.DefaultConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Debug("Retrying Brave search",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err),
		)
	}

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.IsFailure = retry.DefaultIsRetryable
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		log.Warn("Brave circuit breaker state changed",
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	}

	c := &Client{
		cfg: cfg,
		httpClient: infrahttp.NewClient(infrahttp.ClientConfig{
			Timeout:  cfg.Timeout,
			SpanName: "brave.search",
		}),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		breaker:  circuitbreaker.New(breakerCfg),
		retryCfg: retryCfg,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns up to the configured result count for query.
func (c *Client) Search(ctx context.Context, query, category string) ([]domain.Link, error) {
	return c.SearchN(ctx, query, category, c.cfg.ResultCount)
}

// SearchN is Search with an explicit result count.
func (c *Client) SearchN(ctx context.Context, query, category string, count int) ([]domain.Link, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	links, err := c.search(ctx, query, category, count)
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	if c.observer != nil {
		c.observer.ObserveSearch(category, outcome, time.Since(start))
	}
	if err != nil {
		return nil, infraerrors.WrapWithContextf(err, "brave search [%s]", category)
	}
	return links, nil
}

func (c *Client) search(ctx context.Context, query, category string, count int) ([]domain.Link, error) {
	var resp webSearchResponse

	err := retry.Retry(ctx, c.retryCfg, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		return c.breaker.Execute(func() error {
			r, err := c.do(ctx, query, count)
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return resp.links(category), nil
}

func (c *Client) do(ctx context.Context, query string, count int) (webSearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+searchPath+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return webSearchResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return webSearchResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return webSearchResponse{}, httpErr
	}

	var out webSearchResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return webSearchResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

type webSearchResponse struct {
	Web struct {
		Results []webResult `json:"results"`
	} `json:"web"`
}

type webResult struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Video       json.RawMessage `json:"video,omitempty"`
}

func (r webSearchResponse) links(category string) []domain.Link {
	out := make([]domain.Link, 0, len(r.Web.Results))
	for _, res := range r.Web.Results {
		if category == CategorySocial && !IsSocialMediaURL(res.URL) {
			continue
		}
		link := domain.Link{URL: res.URL, Title: res.Title, Description: res.Description}
		if len(res.Video) > 0 || isVideoHost(res.URL) {
			link.Kind = domain.KindVideo
		}
		out = append(out, link)
	}
	return out
}

// IsSocialMediaURL reports whether rawURL points at a social platform.
func IsSocialMediaURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	return containsAny(strings.ToLower(rawURL), socialPlatforms)
}

func isVideoHost(rawURL string) bool {
	return containsAny(strings.ToLower(rawURL), videoHosts)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
