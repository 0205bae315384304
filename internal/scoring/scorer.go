// Package scoring computes the composite 0-100 relevance score of a link.
//
// The score is the sum of six independently capped components:
//
//	domain          0-25  permissive trust table lookup
//	company_match   0-25  company name in title (15 when no company given)
//	title_relevance 0-20  category and quality keywords, vague-title penalty
//	description     0-15  length steps plus money, percentage, recent-year bonuses
//	freshness       0-10  current or recent year in URL or description
//	url_quality     0-5   semantic path, query noise, length
package scoring

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/trust"
)

// DefaultThreshold is the minimum score kept by ScoreAndFilter callers that
// do not choose one.
const DefaultThreshold = 45

const (
	companyMatchScore   = 25
	companyNeutralScore = 15

	titleBase         = 5
	titleCategoryHit  = 5
	titleQualityHit   = 3
	titleVaguePenalty = 10
	titleMax          = 20

	descLongLen    = 150
	descMediumLen  = 80
	descShortLen   = 40
	descLong       = 8
	descMedium     = 5
	descShort      = 2
	descMoney      = 4
	descPercentage = 3
	descRecentYear = 2
	descMax        = 15

	freshCurrent  = 10
	freshLastYear = 7
	freshTwoYears = 4
	freshNeutral  = 5

	urlBase         = 3
	urlGoodPath     = 2
	urlQueryPenalty = 2
	urlLongPenalty  = 1
	urlMaxAmps      = 2
	urlMaxLen       = 200
	urlMax          = 5

	// recentYearSpan is how many years back count as "recent" in descriptions.
	recentYearSpan = 3
	// qualityYearSpan is how many years back count as a title quality marker.
	qualityYearSpan = 2
)

var categoryKeywords = map[string][]string{
	"interview": {"interview", "questions", "hiring", "process", "experience", "prep"},
	"salary":    {"salary", "compensation", "pay", "wage", "benefits", "perks", "total rewards"},
	"culture":   {"culture", "values", "work-life", "environment", "team", "life at"},
	"about":     {"about", "overview", "company", "mission", "history", "leadership", "newsroom"},
	"reviews":   {"review", "rating", "employee", "glassdoor", "feedback", "comparably"},
	"career":    {"career", "growth", "development", "promotion", "training", "careers"},
}

var qualityKeywords = []string{"guide", "complete", "official", "comprehensive", "documentary", "inside"}

var vagueTitles = []string{"home", "welcome", "page", "untitled", "index"}

var goodPaths = []string{"/about", "/careers", "/culture", "/benefits", "/interview", "/salary", "/review"}

var (
	moneyPattern      = regexp.MustCompile(`\$[\d,]+`)
	percentagePattern = regexp.MustCompile(`\d+%`)
)

// Scorer scores links against the permissive trust table. It is safe for
// concurrent use.
type Scorer struct {
	tables *trust.Tables
	now    func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock replaces time.Now for the year-dependent components.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

func NewScorer(tables *trust.Tables, opts ...Option) *Scorer {
	if tables == nil {
		tables = trust.Default()
	}
	s := &Scorer{tables: tables, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreLink returns a copy of link with Score and ScoreBreakdown set. An
// empty companyName scores company_match neutrally; an empty category falls
// back to link.Category. Existing score fields are ignored.
func (s *Scorer) ScoreLink(link domain.Link, companyName, category string) domain.Link {
	if category == "" {
		category = link.Category
	}
	year := s.now().Year()

	companyScore := companyNeutralScore
	if companyName != "" {
		companyScore = companyMatch(link.Title, companyName)
	}

	breakdown := domain.ScoreBreakdown{
		Domain:         s.tables.BaseScore(link.URL),
		CompanyMatch:   companyScore,
		TitleRelevance: titleRelevance(link.Title, category, year),
		Description:    descriptionQuality(link.Description, year),
		Freshness:      freshness(link.URL, link.Description, year),
		URLQuality:     urlQuality(link.URL),
	}

	link.ScoreBreakdown = &breakdown
	link.Score = breakdown.Total()
	return link
}

// ScoreAndFilter scores every link and sorts by score descending, keeping
// input order between equal scores. filtered holds the links scoring at
// least threshold, truncated to maxLinks when maxLinks > 0. all holds every
// scored link.
func (s *Scorer) ScoreAndFilter(
	links []domain.Link, companyName, category string, threshold, maxLinks int,
) (filtered, all []domain.Link) {
	if len(links) == 0 {
		return []domain.Link{}, []domain.Link{}
	}

	all = make([]domain.Link, 0, len(links))
	for _, link := range links {
		all = append(all, s.ScoreLink(link, companyName, category))
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	filtered = make([]domain.Link, 0, len(all))
	for _, link := range all {
		if link.Score >= threshold {
			filtered = append(filtered, link)
		}
	}
	if maxLinks > 0 && len(filtered) > maxLinks {
		filtered = filtered[:maxLinks]
	}
	return filtered, all
}

// MatchesCompany reports whether title names the company: the full
// lowercased name is a substring, or the first word longer than two
// characters of the name is.
func MatchesCompany(title, companyName string) bool {
	if title == "" || companyName == "" {
		return false
	}
	t := strings.ToLower(title)
	c := strings.ToLower(strings.TrimSpace(companyName))
	if strings.Contains(t, c) {
		return true
	}
	for _, w := range strings.Fields(c) {
		if utf8.RuneCountInString(w) > 2 {
			return strings.Contains(t, w)
		}
	}
	return false
}

func companyMatch(title, companyName string) int {
	if MatchesCompany(title, companyName) {
		return companyMatchScore
	}
	return 0
}

// CategoryKey is the first word of the lowercased category, splitting on
// spaces and underscores ("about_us" and "About Us" both give "about").
func CategoryKey(category string) string {
	fields := strings.FieldsFunc(strings.ToLower(category), func(r rune) bool {
		return r == ' ' || r == '_' || r == '\t'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func titleRelevance(title, category string, year int) int {
	if title == "" {
		return 0
	}
	t := strings.ToLower(title)
	score := titleBase

	if containsAny(t, categoryKeywords[CategoryKey(category)]) {
		score += titleCategoryHit
	}

	if containsAny(t, qualityKeywords) || containsAny(t, yearStrings(year, qualityYearSpan)) {
		score += titleQualityHit
	}

	for _, vague := range vagueTitles {
		if t == vague || strings.HasPrefix(t, vague+" ") {
			score -= titleVaguePenalty
			break
		}
	}

	return clamp(score, 0, titleMax)
}

func descriptionQuality(description string, year int) int {
	if description == "" {
		return 0
	}

	score := 0
	switch n := utf8.RuneCountInString(description); {
	case n > descLongLen:
		score += descLong
	case n > descMediumLen:
		score += descMedium
	case n > descShortLen:
		score += descShort
	}

	if moneyPattern.MatchString(description) {
		score += descMoney
	}
	if percentagePattern.MatchString(description) {
		score += descPercentage
	}
	if containsAny(description, yearStrings(year, recentYearSpan)) {
		score += descRecentYear
	}

	return min(score, descMax)
}

func freshness(rawURL, description string, year int) int {
	text := strings.ToLower(rawURL + " " + description)
	switch {
	case strings.Contains(text, strconv.Itoa(year)):
		return freshCurrent
	case strings.Contains(text, strconv.Itoa(year-1)):
		return freshLastYear
	case strings.Contains(text, strconv.Itoa(year-2)):
		return freshTwoYears
	default:
		return freshNeutral
	}
}

func urlQuality(rawURL string) int {
	if rawURL == "" {
		return 0
	}
	u := strings.ToLower(rawURL)
	score := urlBase

	if containsAny(u, goodPaths) {
		score += urlGoodPath
	}
	if strings.Contains(rawURL, "?") && strings.Count(rawURL, "&") > urlMaxAmps {
		score -= urlQueryPenalty
	}
	if utf8.RuneCountInString(rawURL) > urlMaxLen {
		score -= urlLongPenalty
	}

	return clamp(score, 0, urlMax)
}

// yearStrings returns year, year-1, ... year-span as strings.
func yearStrings(year, span int) []string {
	out := make([]string, 0, span+1)
	for y := year; y >= year-span; y-- {
		out = append(out, strconv.Itoa(y))
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

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
