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

// CompanyReviews returns news, culture and career links chosen by the
// model-assisted selector.
func (s *ResearchService) CompanyReviews(ctx context.Context, req domain.ResearchRequest) (*domain.CompanyReviewsResult, error) {
	if err := req.Validate(false, domain.DefaultReviewLinks); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	start := s.now()
	ctx, span := s.startSpan(ctx, PrefixCompanyReviews, req)
	defer span.End()

	params := cacheParams(req.Company, "", "", req.MaxLinks)
	var hit domain.CompanyReviewsResult
	if s.cached(ctx, req, PrefixCompanyReviews, params, &hit) {
		s.finish(span, PrefixCompanyReviews, true, len(hit.Links), start)
		return &hit, nil
	}

	reviewQueries := queries.ReviewQueries(req.Company, s.now().Year())
	results := search.SearchCategories(ctx, s.searcher, reviewQueries, s.concurrency)

	var flat []domain.Link
	for _, category := range queries.ReviewCategories {
		for _, link := range results[category] {
			link.SourceCategory = category
			flat = append(flat, link)
		}
	}
	unique, _ := filter.DeduplicateByURL(flat)

	candidates := s.prefilter(unique)
	selected := s.selector.Select(ctx, selection.CompanyReviews, selection.Subject{Company: req.Company}, candidates, req.MaxLinks)

	result := &domain.CompanyReviewsResult{
		Company:    req.Company,
		Links:      format.ForDisplayAll(selected),
		TotalFound: len(unique),
	}

	s.store(ctx, req, PrefixCompanyReviews, params, result, cache.SevenDays)
	s.finish(span, PrefixCompanyReviews, false, len(result.Links), start)
	return result, nil
}

// InterviewPrep returns interview preparation links for the job family
// inferred from the job title.
func (s *ResearchService) InterviewPrep(ctx context.Context, req domain.ResearchRequest) (*domain.InterviewPrepResult, error) {
	if err := req.Validate(true, domain.DefaultInterviewPrepLinks); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	start := s.now()
	ctx, span := s.startSpan(ctx, PrefixInterviewPrep, req)
	defer span.End()

	params := cacheParams(req.Company, req.JobTitle, "", req.MaxLinks)
	var hit domain.InterviewPrepResult
	if s.cached(ctx, req, PrefixInterviewPrep, params, &hit) {
		s.finish(span, PrefixInterviewPrep, true, len(hit.Links), start)
		return &hit, nil
	}

	family := queries.InferJobFamily(req.JobTitle)
	prepQueries := queries.InterviewPrepQueries(req.Company, req.JobTitle, family)

	keyed := make(map[string]string, len(prepQueries))
	for i, q := range prepQueries {
		keyed[queryKey(i)] = q
	}
	results := search.SearchCategories(ctx, s.searcher, keyed, s.concurrency)

	var flat []domain.Link
	for i := range prepQueries {
		for _, link := range results[queryKey(i)] {
			link.SourceQuery = &i
			flat = append(flat, link)
		}
	}
	unique, _ := filter.DeduplicateByURL(flat)

	candidates := s.prefilter(unique)
	subject := selection.Subject{Company: req.Company, JobTitle: req.JobTitle}
	selected := s.selector.Select(ctx, selection.InterviewPrep, subject, candidates, req.MaxLinks)

	result := &domain.InterviewPrepResult{
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		JobFamily:  family,
		Links:      format.ForDisplayAll(selected),
		TotalFound: len(unique),
	}

	s.store(ctx, req, PrefixInterviewPrep, params, result, cache.OneHour)
	s.finish(span, PrefixInterviewPrep, false, len(result.Links), start)
	return result, nil
}

func queryKey(i int) string {
	return fmt.Sprintf("query_%d", i)
}

// prefilter drops blacklisted links and keeps the most trusted link per
// domain before the candidates go to the model.
func (s *ResearchService) prefilter(links []domain.Link) []domain.Link {
	kept := s.blacklist.FilterBlacklisted(links)
	deduped := filter.DeduplicateByDomain(s.trust.Annotate(kept), 1)

	s.log.Debug("Prefiltered candidates",
		logger.Int("unique", len(links)),
		logger.Int("after_blacklist", len(kept)),
		logger.Int("after_domain_dedup", len(deduped)),
	)
	return deduped
}
