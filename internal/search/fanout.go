package search

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// SearchCategories runs every category query concurrently, at most
// concurrency at a time. A failed category maps to an empty list, so the
// result always has one entry per query key.
func SearchCategories(ctx context.Context, searcher Searcher, queries map[string]string, concurrency int) map[string][]domain.Link {
	log := logger.FromContext(ctx)

	var mu sync.Mutex
	results := make(map[string][]domain.Link, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for category, query := range queries {
		g.Go(func() error {
			links, err := searcher.Search(gctx, query, category)
			if err != nil {
				log.Warn("Category search failed",
					logger.String("category", category),
					logger.Error(err),
				)
				links = []domain.Link{}
			}

			mu.Lock()
			results[category] = links
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
