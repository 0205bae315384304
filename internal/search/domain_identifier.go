package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

const (
	domainResultCount = 10

	companyInHostPoints = 10
	titleSignalPoints   = 5
	rootPathPoints      = 3
	descSignalPoints    = 2
	rankWeight          = 0.5
)

var excludedHosts = []string{
	"wikipedia.org", "linkedin.com", "facebook.com",
	"twitter.com", "instagram.com", "youtube.com",
	"crunchbase.com", "bloomberg.com", "reuters.com",
	"forbes.com", "indeed.com", "glassdoor.com",
	"yelp.com", "bbb.org", "reddit.com",
}

var auxiliarySubdomains = []string{"docs.", "support.", "help.", "blog.", "dev.", "developers."}

// DomainSearcher is a search with an explicit result count.
type DomainSearcher interface {
	SearchN(ctx context.Context, query, category string, count int) ([]domain.Link, error)
}

// DomainIdentifier guesses a company's primary web domain from an
// "official website" search.
type DomainIdentifier struct {
	searcher DomainSearcher
	log      logger.Logger
}

func NewDomainIdentifier(searcher DomainSearcher, log logger.Logger) *DomainIdentifier {
	return &DomainIdentifier{searcher: searcher, log: log.With(logger.Component("domain-identifier"))}
}

// Identify returns the best-scoring host for company, or "" when nothing
// plausible was found or the search failed.
func (d *DomainIdentifier) Identify(ctx context.Context, company string) string {
	results, err := d.searcher.SearchN(ctx, company+" official website", "domain", domainResultCount)
	if err != nil {
		d.log.Warn("Domain identification failed",
			logger.String("company", company),
			logger.Error(err),
		)
		return ""
	}
	return BestDomain(company, results)
}

// BestDomain scores the hosts in results. Repeated hosts accumulate points
// and ties go to the host reached first.
func BestDomain(company string, results []domain.Link) string {
	companyLower := strings.ToLower(company)

	scores := make(map[string]float64)
	var order []string

	for rank, r := range results {
		if rank >= domainResultCount {
			break
		}
		parsed, err := url.Parse(r.URL)
		if err != nil {
			continue
		}
		host := strings.ReplaceAll(parsed.Host, "www.", "")
		if host == "" || containsAny(host, excludedHosts) || containsAny(parsed.Host, auxiliarySubdomains) {
			continue
		}

		if _, seen := scores[host]; !seen {
			order = append(order, host)
		}

		title := strings.ToLower(r.Title)
		desc := strings.ToLower(r.Description)

		score := scores[host]
		if strings.Contains(host, companyLower) {
			score += companyInHostPoints
		}
		if containsAny(title, []string{"official", "home", companyLower}) {
			score += titleSignalPoints
		}
		if parsed.Path == "" || parsed.Path == "/" {
			score += rootPathPoints
		}
		score += float64(domainResultCount-rank) * rankWeight
		if containsAny(desc, []string{"official", "homepage", "welcome to"}) {
			score += descSignalPoints
		}
		scores[host] = score
	}

	best := ""
	bestScore := 0.0
	for _, host := range order {
		if best == "" || scores[host] > bestScore {
			best, bestScore = host, scores[host]
		}
	}
	if best != "" {
		return best
	}

	for _, r := range results {
		parsed, err := url.Parse(r.URL)
		if err != nil {
			continue
		}
		host := strings.ReplaceAll(parsed.Host, "www.", "")
		if host != "" && !containsAny(host, excludedHosts) {
			return host
		}
	}
	return ""
}
