package service

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// ScoreLinks runs the link scorer over caller-supplied links. A zero
// threshold means the configured default; a zero max_links keeps every
// link that passes.
func (s *ResearchService) ScoreLinks(ctx context.Context, req domain.ScoreLinksRequest) (*domain.ScoreLinksResult, error) {
	if req.Threshold < 0 || req.Threshold > maxThreshold {
		return nil, fmt.Errorf("validation error: %w", &domain.ValidationError{
			Field:   "threshold",
			Message: fmt.Sprintf("must be between 0 and %d", maxThreshold),
		})
	}
	if req.MaxLinks < 0 {
		return nil, fmt.Errorf("validation error: %w", &domain.ValidationError{
			Field:   "max_links",
			Message: "must not be negative",
		})
	}

	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.threshold
	}

	_, span := s.tracer.Start(ctx, "research.score_links")
	defer span.End()

	filtered, all := s.scorer.ScoreAndFilter(req.Links, req.Company, req.Category, threshold, req.MaxLinks)
	if s.observer != nil {
		s.observer.RecordLinksScored(len(all))
	}

	return &domain.ScoreLinksResult{
		Links:     filtered,
		AllScored: all,
		Threshold: threshold,
	}, nil
}

// CacheStats reports the request cache's in-memory tier.
func (s *ResearchService) CacheStats() (cache.Stats, error) {
	if s.cache == nil {
		return cache.Stats{}, ErrNoCache
	}
	return s.cache.Stats(), nil
}

// ClearCache empties both cache tiers.
func (s *ResearchService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return ErrNoCache
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	s.log.Info("Request cache cleared")
	return nil
}

// AutocompleteJobTitles returns up to ten job titles containing q.
func (s *ResearchService) AutocompleteJobTitles(q string) []string {
	if s.autocomplete == nil {
		return []string{}
	}
	return s.autocomplete.JobTitles(q)
}

// AutocompleteCompanies returns up to ten companies, prefix matches first.
func (s *ResearchService) AutocompleteCompanies(q string) []string {
	if s.autocomplete == nil {
		return []string{}
	}
	return s.autocomplete.Companies(q)
}
