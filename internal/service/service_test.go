package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/autocomplete"
	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
	"github.com/jonesrussell/north-cloud/company-research/internal/service"
)

var errSearchDown = errors.New("search down")

// fakeSearcher answers by category and records every query it sees.
type fakeSearcher struct {
	mu       sync.Mutex
	results  map[string][]domain.Link
	failing  map[string]bool
	queries  map[string]string
	numCalls int
}

func newFakeSearcher(results map[string][]domain.Link) *fakeSearcher {
	return &fakeSearcher{results: results, failing: map[string]bool{}, queries: map[string]string{}}
}

func (f *fakeSearcher) Search(_ context.Context, query, category string) ([]domain.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.numCalls++
	f.queries[category] = query
	if f.failing[category] {
		return nil, errSearchDown
	}
	return domain.CloneLinks(f.results[category]), nil
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numCalls
}

func (f *fakeSearcher) query(category string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[category]
}

type fakeDomains struct {
	domain string
	calls  int
}

func (f *fakeDomains) Identify(context.Context, string) string {
	f.calls++
	return f.domain
}

// fakeSelector returns the first maxLinks candidates.
type fakeSelector struct {
	useCase    string
	subject    selection.Subject
	candidates []domain.Link
}

func (f *fakeSelector) Select(
	_ context.Context, uc selection.UseCase, subject selection.Subject, candidates []domain.Link, maxLinks int,
) []domain.Link {
	f.useCase = uc.Name
	f.subject = subject
	f.candidates = candidates
	if len(candidates) > maxLinks {
		return candidates[:maxLinks]
	}
	return candidates
}

type recordingObserver struct {
	endpoints []string
	cached    []bool
	scored    int
}

func (r *recordingObserver) ObserveEndpoint(endpoint string, cached bool, _ int, _ time.Duration) {
	r.endpoints = append(r.endpoints, endpoint)
	r.cached = append(r.cached, cached)
}

func (r *recordingObserver) RecordLinksScored(n int) { r.scored += n }

type fixture struct {
	svc      *service.ResearchService
	searcher *fakeSearcher
	domains  *fakeDomains
	selector *fakeSelector
	observer *recordingObserver
	cache    *cache.RequestCache
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T, results map[string][]domain.Link, identified string) *fixture {
	t.Helper()

	f := &fixture{
		searcher: newFakeSearcher(results),
		domains:  &fakeDomains{domain: identified},
		selector: &fakeSelector{},
		observer: &recordingObserver{},
		cache:    cache.New(logger.NewNop(), cache.WithClock(fixedNow)),
	}
	f.svc = service.NewResearchService(service.Dependencies{
		Searcher:     f.searcher,
		Domains:      f.domains,
		Selector:     f.selector,
		Cache:        f.cache,
		Observer:     f.observer,
		Autocomplete: autocomplete.New([]string{"Software Engineer", "Data Engineer"}, []string{"Acme", "Big Acme"}),
		Now:          fixedNow,
	}, logger.NewNop())
	return f
}

func TestCompanyInfo_OrdersCategoriesAndCaches(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"culture":  {{URL: "https://www.microsoft.com/culture", Title: "Our culture"}},
		"about_us": {{URL: "https://www.microsoft.com/about", Title: "About Microsoft"}},
		"news":     {{URL: "https://www.microsoft.com/about", Title: "About Microsoft"}},
	}, "")

	req := domain.ResearchRequest{Company: "Microsoft", JobTitle: "Software Engineer", Location: "Seattle, WA"}
	got, err := f.svc.CompanyInfo(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "microsoft.com", got.Domain)
	assert.Equal(t, 3, got.TotalFound)
	require.Len(t, got.Links, 2)
	assert.Equal(t, "About Microsoft | Microsoft", got.Links[0].Title)
	assert.Equal(t, "about_us", got.Links[0].CategoryKey)
	assert.Equal(t, "culture", got.Links[1].CategoryKey)
	assert.Zero(t, f.domains.calls, "override skips identification")
	assert.Contains(t, f.searcher.query("about_us"), "site:microsoft.com")

	calls := f.searcher.calls()
	again, err := f.svc.CompanyInfo(context.Background(),
		domain.ResearchRequest{Company: "  MICROSOFT ", JobTitle: "software engineer", Location: "Seattle, WA"})
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, calls, f.searcher.calls(), "normalized request is served from cache")
	assert.Equal(t, []bool{false, true}, f.observer.cached)
}

func TestCompanyInfo_NoDomainIsNotCached(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, "")
	req := domain.ResearchRequest{Company: "Tiny Startup", JobTitle: "Engineer"}

	got, err := f.svc.CompanyInfo(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, service.NoDomainMessage, got.Error)
	assert.Empty(t, got.Domain)
	assert.NotNil(t, got.Links)

	_, err = f.svc.CompanyInfo(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.domains.calls)
	assert.Zero(t, f.cache.Stats().Total)
}

func TestCompanyInfo_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, "acme.com")

	_, err := f.svc.CompanyInfo(context.Background(), domain.ResearchRequest{Company: "Acme"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "job_title", vErr.Field)
	assert.Zero(t, f.searcher.calls())
}

func TestSalaryBenefits_FallbackDomainAndRemote(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"salary":           {{URL: "https://www.glassdoor.com/Salary/acme", Title: "Acme Widgets salaries"}},
		"benefits_landing": {{URL: "https://acmewidgets.com/benefits", Title: "Benefits"}},
	}, "")
	f.searcher.failing["perks"] = true

	got, err := f.svc.SalaryBenefits(context.Background(),
		domain.ResearchRequest{Company: "Acme Widgets", JobTitle: "Analyst"})
	require.NoError(t, err)

	assert.Equal(t, domain.LocationRemote, got.Location)
	assert.Equal(t, 2, got.TotalFound)
	require.Len(t, got.Links, 2)
	assert.Equal(t, "benefits_landing", got.Links[0].CategoryKey)
	assert.Equal(t, "salary", got.Links[1].CategoryKey)
	assert.Contains(t, f.searcher.query("benefits_landing"), "site:acmewidgets.com")
	assert.NotContains(t, f.searcher.query("salary"), "Remote")
}

func TestSalaryBenefits_TruncatesToMaxLinks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"salary":           {{URL: "https://levels.fyi/acme", Title: "Acme pay"}},
		"benefits_landing": {{URL: "https://acme.com/benefits", Title: "Benefits"}},
		"perks":            {{URL: "https://acme.com/perks", Title: "Perks"}},
	}, "acme.com")

	got, err := f.svc.SalaryBenefits(context.Background(),
		domain.ResearchRequest{Company: "Acme", JobTitle: "Analyst", MaxLinks: 2})
	require.NoError(t, err)
	assert.Len(t, got.Links, 2)
	assert.Equal(t, 3, got.TotalFound)
}

func TestCompanyReviews_PrefiltersBeforeSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"news": {
			{URL: "https://www.reuters.com/acme-earnings", Title: "Acme earnings"},
			{URL: "https://news.example.com/acme-layoffs", Title: "Acme announces layoffs"},
		},
		"culture": {
			{URL: "https://www.glassdoor.com/Reviews/acme", Title: "Acme reviews"},
			{URL: "https://www.glassdoor.com/Reviews/acme-2", Title: "More Acme reviews"},
			{URL: "https://www.reuters.com/acme-earnings", Title: "Acme earnings"},
		},
		"career": {{URL: "https://acme.com/jobs/123", Title: "Apply now"}},
	}, "")

	got, err := f.svc.CompanyReviews(context.Background(), domain.ResearchRequest{Company: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, 5, got.TotalFound)
	assert.Equal(t, "company_reviews", f.selector.useCase)
	assert.Equal(t, "Acme", f.selector.subject.Company)

	urls := make([]string, 0, len(f.selector.candidates))
	for _, c := range f.selector.candidates {
		urls = append(urls, c.URL)
		assert.NotEmpty(t, c.SourceCategory)
		assert.NotEmpty(t, c.Domain)
	}
	assert.ElementsMatch(t, []string{
		"https://www.reuters.com/acme-earnings",
		"https://www.glassdoor.com/Reviews/acme",
	}, urls)
	assert.Contains(t, f.searcher.query("news"), "2024 2025")

	for _, l := range got.Links {
		assert.Contains(t, l.Title, " | ")
	}
}

func TestInterviewPrep_TagsSourceQuery(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"query_0": {{URL: "https://www.glassdoor.com/Interview/acme", Title: "Acme interview questions"}},
		"query_2": {{URL: "https://leetcode.com/discuss/acme", Title: "Acme coding round"}},
	}, "")

	got, err := f.svc.InterviewPrep(context.Background(),
		domain.ResearchRequest{Company: "Acme", JobTitle: "Senior Software Engineer", MaxLinks: 1})
	require.NoError(t, err)

	assert.Equal(t, "Technology & Engineering", got.JobFamily)
	assert.Equal(t, 2, got.TotalFound)
	assert.Len(t, got.Links, 1)
	assert.Equal(t, "interview_prep", f.selector.useCase)
	assert.Equal(t, "Senior Software Engineer", f.selector.subject.JobTitle)

	sources := map[string]int{}
	for _, c := range f.selector.candidates {
		require.NotNil(t, c.SourceQuery)
		sources[c.URL] = *c.SourceQuery
	}
	assert.Equal(t, map[string]int{
		"https://www.glassdoor.com/Interview/acme": 0,
		"https://leetcode.com/discuss/acme":        2,
	}, sources)
	assert.Equal(t, 4, f.searcher.calls())
}

func TestNoCache_BypassesReadAndWrite(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"news": {{URL: "https://www.reuters.com/acme", Title: "Acme news"}},
	}, "")

	req := domain.ResearchRequest{Company: "Acme", NoCache: true}
	_, err := f.svc.CompanyReviews(context.Background(), req)
	require.NoError(t, err)
	_, err = f.svc.CompanyReviews(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 6, f.searcher.calls())
	assert.Zero(t, f.cache.Stats().Total)
}

func TestScoreLinks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, "")
	links := []domain.Link{
		{
			URL:         "https://glassdoor.com/x",
			Title:       "Acme Corp reviews 2025",
			Description: "Salary data with $120,000 range",
		},
		{URL: "https://random.example/page", Title: "home"},
	}

	got, err := f.svc.ScoreLinks(context.Background(), domain.ScoreLinksRequest{Links: links, Company: "Acme Corp"})
	require.NoError(t, err)

	assert.Equal(t, 45, got.Threshold)
	require.Len(t, got.AllScored, 2)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "https://glassdoor.com/x", got.Links[0].URL)
	assert.Equal(t, 25, got.Links[0].ScoreBreakdown.CompanyMatch)
	assert.Equal(t, 2, f.observer.scored)

	_, err = f.svc.ScoreLinks(context.Background(), domain.ScoreLinksRequest{Threshold: 101})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "threshold", vErr.Field)
}

func TestCacheAdministration(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string][]domain.Link{
		"news": {{URL: "https://www.reuters.com/acme", Title: "Acme news"}},
	}, "")
	_, err := f.svc.CompanyReviews(context.Background(), domain.ResearchRequest{Company: "Acme"})
	require.NoError(t, err)

	stats, err := f.svc.CacheStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Valid)
	assert.False(t, stats.RemoteEnabled)

	require.NoError(t, f.svc.ClearCache(context.Background()))
	stats, err = f.svc.CacheStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	bare := service.NewResearchService(service.Dependencies{}, logger.NewNop())
	_, err = bare.CacheStats()
	require.ErrorIs(t, err, service.ErrNoCache)
	assert.Empty(t, bare.AutocompleteCompanies("a"))
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, "")
	assert.Equal(t, []string{"Software Engineer", "Data Engineer"}, f.svc.AutocompleteJobTitles("ENGINEER"))
	assert.Equal(t, []string{"Acme", "Big Acme"}, f.svc.AutocompleteCompanies("ac"))
	assert.True(t, strings.HasPrefix(f.svc.AutocompleteCompanies("big")[0], "Big"))
}
