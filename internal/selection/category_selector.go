package selection

import (
	"sort"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/scoring"
	"github.com/jonesrussell/north-cloud/company-research/internal/trust"
)

// DefaultTrustedPass are domains whose links survive the company-name
// filter even when the title does not name the company.
var DefaultTrustedPass = []string{"glassdoor.com", "levels.fyi", "linkedin.com"}

// CategorySelector picks one representative link per category and orders
// them by the set's priority list.
//
// Input lists are assumed to be pre-ranked by the search provider. The
// selector never re-ranks within a category (apart from moving videos
// first when asked to); it only picks the head and orders across
// categories.
type CategorySelector struct {
	set           CategorySet
	videoFirst    bool
	companyFilter bool
	trustedPass   map[string]struct{}
}

// SelectorOption configures a CategorySelector.
type SelectorOption func(*CategorySelector)

// WithVideoFirst moves video links ahead of the rest within each category.
func WithVideoFirst() SelectorOption {
	return func(s *CategorySelector) { s.videoFirst = true }
}

// WithCompanyFilter keeps only links whose title names the company or
// whose domain is in the trusted pass set. A category left empty by the
// filter is dropped, not refilled from unfiltered results.
func WithCompanyFilter() SelectorOption {
	return func(s *CategorySelector) { s.companyFilter = true }
}

// WithTrustedPass replaces DefaultTrustedPass.
func WithTrustedPass(domains ...string) SelectorOption {
	return func(s *CategorySelector) {
		s.trustedPass = make(map[string]struct{}, len(domains))
		for _, d := range domains {
			s.trustedPass[d] = struct{}{}
		}
	}
}

func NewCategorySelector(set CategorySet, opts ...SelectorOption) *CategorySelector {
	s := &CategorySelector{set: set}
	WithTrustedPass(DefaultTrustedPass...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set returns the selector's category set.
func (s *CategorySelector) Set() CategorySet {
	return s.set
}

// SelectTopPerCategory maps every category with at least one surviving
// link to its first link, labelled with Category and CategoryKey. The
// company filter only applies when companyName is non-empty.
func (s *CategorySelector) SelectTopPerCategory(results map[string][]domain.Link, companyName string) map[string]domain.Link {
	selected := make(map[string]domain.Link, len(results))

	for key, links := range results {
		candidates := links
		if s.videoFirst {
			candidates = domain.CloneLinks(links)
			sort.SliceStable(candidates, func(i, j int) bool {
				return candidates[i].IsVideo() && !candidates[j].IsVideo()
			})
		}
		if s.companyFilter && companyName != "" {
			candidates = s.filterByCompany(candidates, companyName)
		}
		if len(candidates) == 0 {
			continue
		}

		top := candidates[0]
		top.Category = s.set.Label(key)
		top.CategoryKey = key
		selected[key] = top
	}

	return selected
}

func (s *CategorySelector) filterByCompany(links []domain.Link, companyName string) []domain.Link {
	out := make([]domain.Link, 0, len(links))
	for _, link := range links {
		if scoring.MatchesCompany(link.Title, companyName) || s.passes(link.URL) {
			out = append(out, link)
		}
	}
	return out
}

func (s *CategorySelector) passes(rawURL string) bool {
	_, ok := s.trustedPass[trust.ExtractDomain(rawURL)]
	return ok
}

// OrderByPriority emits the selected links in the set's fixed order.
// Keys missing from the input are skipped; keys outside the priority list
// are never emitted.
func (s *CategorySelector) OrderByPriority(selected map[string]domain.Link) []domain.Link {
	ordered := make([]domain.Link, 0, len(selected))
	for _, key := range s.set.Priority {
		if link, ok := selected[key]; ok {
			ordered = append(ordered, link)
		}
	}
	return ordered
}
