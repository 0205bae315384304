package filter

import (
	"sort"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/trust"
)

// DeduplicateByDomain keeps at most maxPerDomain links per domain (values
// below 1 mean 1). Within a domain the highest Confidence wins; the output
// is sorted by Confidence descending across domains.
//
// Tie order between equal confidences is not part of the contract. This
// implementation happens to keep first-seen order because both sorts are
// stable and groups are visited in order of first appearance.
func DeduplicateByDomain(links []domain.Link, maxPerDomain int) []domain.Link {
	if maxPerDomain < 1 {
		maxPerDomain = 1
	}

	var order []string
	groups := make(map[string][]domain.Link)
	for _, link := range links {
		d := link.Domain
		if d == "" {
			d = trust.ExtractDomain(link.URL)
		}
		if _, seen := groups[d]; !seen {
			order = append(order, d)
		}
		groups[d] = append(groups[d], link)
	}

	out := make([]domain.Link, 0, len(links))
	for _, d := range order {
		group := groups[d]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Confidence > group[j].Confidence
		})
		out = append(out, group[:min(maxPerDomain, len(group))]...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// DeduplicateByURL keeps the first link for each URL and drops links with
// an empty URL. It returns the kept links and the number dropped.
func DeduplicateByURL(links []domain.Link) ([]domain.Link, int) {
	seen := make(map[string]struct{}, len(links))
	out := make([]domain.Link, 0, len(links))
	for _, link := range links {
		if link.URL == "" {
			continue
		}
		if _, dup := seen[link.URL]; dup {
			continue
		}
		seen[link.URL] = struct{}{}
		out = append(out, link)
	}
	return out, len(links) - len(out)
}
