package service

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/filter"
	"github.com/jonesrussell/north-cloud/company-research/internal/format"
	"github.com/jonesrussell/north-cloud/company-research/internal/queries"
	"github.com/jonesrussell/north-cloud/company-research/internal/search"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
)

// NoDomainMessage is reported when no company domain can be found.
const NoDomainMessage = "Could not identify company domain"

// CompanyInfo returns one link per overview category, restricted to the
// company's own domain.
func (s *ResearchService) CompanyInfo(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyInfoResult, error) {
	if err := req.Validate(true, domain.DefaultCompanyInfoLinks); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	start := s.now()
	ctx, span := s.startSpan(ctx, PrefixCompanyInfo, req)
	defer span.End()

	params := cacheParams(req.Company, req.JobTitle, req.Location, req.MaxLinks)
	var hit domain.CompanyInfoResult
	if s.cached(ctx, req, PrefixCompanyInfo, params, &hit) {
		s.finish(span, PrefixCompanyInfo, true, len(hit.Links), start)
		return &hit, nil
	}

	companyDomain := s.resolveDomain(ctx, req.Company)
	if companyDomain == "" {
		s.log.Warn("No domain for company", logger.String("company", req.Company))
		s.finish(span, PrefixCompanyInfo, false, 0, start)
		return &domain.CompanyInfoResult{Links: []domain.Link{}, Error: NoDomainMessage}, nil
	}

	categoryQueries := queries.CompanyOverviewQueries(req.Company, companyDomain, req.JobTitle)
	results := search.SearchCategories(ctx, s.searcher, categoryQueries, s.concurrency)

	links, selected := s.selectPerCategory(s.overview, results, req.Company, req.MaxLinks)
	result := &domain.CompanyInfoResult{
		Domain:     companyDomain,
		Links:      links,
		TotalFound: selected,
	}

	s.store(ctx, req, PrefixCompanyInfo, params, result, cache.SevenDays)
	s.finish(span, PrefixCompanyInfo, false, len(result.Links), start)
	return result, nil
}

// SalaryBenefits returns one link per salary and benefits category. An
// empty location means a remote role.
func (s *ResearchService) SalaryBenefits(ctx context.Context, req domain.ResearchRequest) (*domain.SalaryBenefitsResult, error) {
	if err := req.Validate(true, domain.DefaultSalaryBenefitsLinks); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if req.Location == "" {
		req.Location = domain.LocationRemote
	}

	start := s.now()
	ctx, span := s.startSpan(ctx, PrefixSalaryBenefits, req)
	defer span.End()

	params := cacheParams(req.Company, req.JobTitle, req.Location, req.MaxLinks)
	var hit domain.SalaryBenefitsResult
	if s.cached(ctx, req, PrefixSalaryBenefits, params, &hit) {
		s.finish(span, PrefixSalaryBenefits, true, len(hit.Links), start)
		return &hit, nil
	}

	companyDomain := s.resolveDomain(ctx, req.Company)
	if companyDomain == "" {
		companyDomain = queries.FallbackDomain(req.Company)
		s.log.Warn("Could not identify domain, using fallback",
			logger.String("company", req.Company),
			logger.String("domain", companyDomain),
		)
	}

	loc := queries.ParseLocation(req.Location)
	categoryQueries := queries.SalaryBenefitsQueries(req.Company, companyDomain, req.JobTitle, loc.City, loc.State)
	results := search.SearchCategories(ctx, s.searcher, categoryQueries, s.concurrency)

	links, selected := s.selectPerCategory(s.salary, results, req.Company, req.MaxLinks)
	result := &domain.SalaryBenefitsResult{
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		Location:   req.Location,
		Links:      links,
		TotalFound: selected,
	}

	s.store(ctx, req, PrefixSalaryBenefits, params, result, cache.OneDay)
	s.finish(span, PrefixSalaryBenefits, false, len(result.Links), start)
	return result, nil
}

func (s *ResearchService) resolveDomain(ctx context.Context, company string) string {
	if d, ok := queries.DomainOverride(company); ok {
		return d
	}
	if s.domains == nil {
		return ""
	}
	return s.domains.Identify(ctx, company)
}

// selectPerCategory picks the head link of each category, orders by the
// selector's priority list, drops repeated URLs and formats the first
// maxLinks. It also returns how many categories produced a link.
func (s *ResearchService) selectPerCategory(
	selector *selection.CategorySelector, results map[string][]domain.Link, company string, maxLinks int,
) ([]domain.Link, int) {
	selected := selector.SelectTopPerCategory(results, company)
	ordered := selector.OrderByPriority(selected)

	unique, dropped := filter.DeduplicateByURL(ordered)
	if dropped > 0 {
		s.log.Debug("Dropped duplicate category links",
			logger.String("categories", selector.Set().Name),
			logger.Int("dropped", dropped),
		)
	}
	if len(unique) > maxLinks {
		unique = unique[:maxLinks]
	}
	return format.ForDisplayAll(unique), len(selected)
}
