// Package service orchestrates the research endpoints: query building,
// search fan-out, filtering, selection, formatting and caching.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/autocomplete"
	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/filter"
	"github.com/jonesrussell/north-cloud/company-research/internal/scoring"
	"github.com/jonesrussell/north-cloud/company-research/internal/search"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
	"github.com/jonesrussell/north-cloud/company-research/internal/trust"
)

// Cache prefixes, one per endpoint.
const (
	PrefixCompanyInfo    = "company_info"
	PrefixSalaryBenefits = "salary_benefits"
	PrefixCompanyReviews = "company_reviews"
	PrefixInterviewPrep  = "interview_prep"
)

const (
	tracerName         = "company-research"
	defaultConcurrency = 10
	defaultThreshold   = 45
	maxThreshold       = 100
)

// ErrNoCache is returned by the cache administration operations when the
// service was built without a cache.
var ErrNoCache = errors.New("request cache not configured")

// DomainIdentifier resolves a company name to its primary web domain.
type DomainIdentifier interface {
	Identify(ctx context.Context, company string) string
}

// LinkSelector picks the final links for the model-assisted endpoints.
type LinkSelector interface {
	Select(ctx context.Context, uc selection.UseCase, subject selection.Subject, candidates []domain.Link, maxLinks int) []domain.Link
}

// Observer receives per-request metrics.
type Observer interface {
	ObserveEndpoint(endpoint string, cached bool, links int, elapsed time.Duration)
	RecordLinksScored(n int)
}

// Dependencies are the collaborators of a ResearchService. Searcher,
// Domains and Selector are required; the rest fall back to defaults.
type Dependencies struct {
	Searcher search.Searcher
	Domains  DomainIdentifier
	Selector LinkSelector

	Cache        *cache.RequestCache
	Trust        *trust.Tables
	Scorer       *scoring.Scorer
	Blacklist    *filter.Blacklist
	Overview     *selection.CategorySelector
	Salary       *selection.CategorySelector
	Autocomplete *autocomplete.Index
	Observer     Observer
	Tracer       trace.Tracer

	// Concurrency bounds the category fan-out.
	Concurrency int
	// Threshold is the default link score threshold for ScoreLinks.
	Threshold int
	Now       func() time.Time
}

// ResearchService implements the research endpoints. It never fails on
// upstream errors: search and model failures degrade to smaller results.
type ResearchService struct {
	searcher     search.Searcher
	domains      DomainIdentifier
	selector     LinkSelector
	cache        *cache.RequestCache
	trust        *trust.Tables
	scorer       *scoring.Scorer
	blacklist    *filter.Blacklist
	overview     *selection.CategorySelector
	salary       *selection.CategorySelector
	autocomplete *autocomplete.Index
	observer     Observer
	tracer       trace.Tracer
	concurrency  int
	threshold    int
	now          func() time.Time
	log          logger.Logger
}

// NewResearchService creates a research service.
func NewResearchService(deps Dependencies, log logger.Logger) *ResearchService {
	s := &ResearchService{
		searcher:     deps.Searcher,
		domains:      deps.Domains,
		selector:     deps.Selector,
		cache:        deps.Cache,
		trust:        deps.Trust,
		scorer:       deps.Scorer,
		blacklist:    deps.Blacklist,
		overview:     deps.Overview,
		salary:       deps.Salary,
		autocomplete: deps.Autocomplete,
		observer:     deps.Observer,
		tracer:       deps.Tracer,
		concurrency:  deps.Concurrency,
		threshold:    deps.Threshold,
		now:          deps.Now,
		log:          log.With(logger.Component("research")),
	}

	if s.trust == nil {
		s.trust = trust.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer(s.trust, scoring.WithClock(s.now))
	}
	if s.blacklist == nil {
		s.blacklist = filter.DefaultBlacklist()
	}
	if s.overview == nil {
		s.overview = selection.NewCategorySelector(selection.OverviewCategories)
	}
	if s.salary == nil {
		s.salary = selection.NewCategorySelector(selection.SalaryCategories)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.concurrency <= 0 {
		s.concurrency = defaultConcurrency
	}
	if s.threshold <= 0 {
		s.threshold = defaultThreshold
	}
	return s
}

// cacheParams normalizes the request fields that identify a cached result.
// Company and job title are case-folded; location keeps its case.
func cacheParams(company, jobTitle, location string, maxLinks int) map[string]string {
	params := map[string]string{
		"company":   strings.ToLower(strings.TrimSpace(company)),
		"max_links": strconv.Itoa(maxLinks),
	}
	if jobTitle != "" {
		params["job_title"] = strings.ToLower(strings.TrimSpace(jobTitle))
	}
	if location != "" {
		params["location"] = strings.TrimSpace(location)
	}
	return params
}

func (s *ResearchService) cached(ctx context.Context, req domain.ResearchRequest, prefix string, params map[string]string, dest any) bool {
	if req.NoCache || s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, prefix, params, dest)
}

func (s *ResearchService) store(ctx context.Context, req domain.ResearchRequest, prefix string, params map[string]string, value any, ttl time.Duration) {
	if req.NoCache || s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, prefix, params, value, ttl); err != nil {
		s.log.Warn("Failed to cache result",
			logger.String("prefix", prefix),
			logger.Error(err),
		)
	}
}

//nolint:spancheck // Caller ends the span
func (s *ResearchService) startSpan(ctx context.Context, endpoint string, req domain.ResearchRequest) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "research."+endpoint, trace.WithAttributes(
		attribute.String("research.company", req.Company),
		attribute.String("research.job_title", req.JobTitle),
		attribute.Int("research.max_links", req.MaxLinks),
		attribute.Bool("research.no_cache", req.NoCache),
	))
}

func (s *ResearchService) finish(span trace.Span, endpoint string, cached bool, links int, start time.Time) {
	elapsed := s.now().Sub(start)
	span.SetAttributes(
		attribute.Bool("research.cached", cached),
		attribute.Int("research.links", links),
	)
	if s.observer != nil {
		s.observer.ObserveEndpoint(endpoint, cached, links, elapsed)
	}
	s.log.Info("Research request completed",
		logger.String("endpoint", endpoint),
		logger.Bool("cached", cached),
		logger.Int("links", links),
		logger.Duration("elapsed", elapsed),
	)
}
