package selection

import (
	"sort"
	"strings"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// FallbackCategory labels every link chosen by FallbackSelection.
const FallbackCategory = "Company Information"

var fallbackExcluded = []string{"job/", "location/", ".pdf", "/in/"}

type keywordBucket struct {
	points   int
	keywords []string
	inURL    bool
}

var fallbackBuckets = []keywordBucket{
	{points: 10, keywords: []string{"about", "mission", "overview"}, inURL: true},
	{points: 9, keywords: []string{"culture", "values", "life at"}, inURL: true},
	{points: 8, keywords: []string{"leadership", "executive"}},
}

const (
	companyProfilePoints = 7
	careersPagePoints    = 5
)

// FallbackSelection ranks links with keyword buckets when no model answer is
// usable. Job postings, location pages, PDFs and individual profiles are
// excluded. maxLinks <= 0 keeps every remaining link.
func FallbackSelection(links []domain.Link, maxLinks int) []domain.Link {
	type scored struct {
		points int
		link   domain.Link
	}

	candidates := make([]scored, 0, len(links))
	for _, link := range links {
		u := strings.ToLower(link.URL)
		if containsAny(u, fallbackExcluded) {
			continue
		}
		t := strings.ToLower(link.Title)

		points := 0
		for _, b := range fallbackBuckets {
			if containsAny(t, b.keywords) || (b.inURL && containsAny(u, b.keywords)) {
				points += b.points
			}
		}
		if strings.Contains(u, "linkedin.com/company/") {
			points += companyProfilePoints
		}
		if strings.Contains(u, "careers") && !strings.Contains(u, "job") {
			points += careersPagePoints
		}

		candidates = append(candidates, scored{points: points, link: link})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].points > candidates[j].points })

	if maxLinks > 0 && len(candidates) > maxLinks {
		candidates = candidates[:maxLinks]
	}

	out := make([]domain.Link, 0, len(candidates))
	for _, c := range candidates {
		c.link.Category = FallbackCategory
		out = append(out, c.link)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
