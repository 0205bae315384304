// Package trust holds the curated domain trust tables.
//
// Two tables exist on purpose and are tuned independently. The strict
// confidence table (0-10) gates membership: an unknown domain scores 0 and
// is not trusted. The scoring table (0-25) weights relevance: an unknown
// domain still gets UnknownBaseScore.
package trust

import (
	"maps"
	"net/url"
	"sort"
	"strings"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

const (
	// UnknownBaseScore is what BaseScore returns for a domain in neither table.
	UnknownBaseScore = 12
	// MaxBaseScore caps BaseScore.
	MaxBaseScore = 25
	// MaxConfidence caps DomainConfidence.
	MaxConfidence = 10
)

// Tables is the pair of lookup tables. The zero value is not usable; build
// one with New or Default.
type Tables struct {
	confidence map[string]int
	scoring    map[string]int
}

// Default returns the built-in tables without overrides.
func Default() *Tables {
	return New(nil, nil)
}

// New copies the built-in tables and applies per-domain overrides. Override
// keys are lowercased and stripped of "www.". A confidence override of 0 or
// less removes the domain from the strict table. Values are clamped to the
// table's range.
func New(confidenceOverrides, scoringOverrides map[string]int) *Tables {
	t := &Tables{
		confidence: maps.Clone(confidenceScores),
		scoring:    maps.Clone(scoringScores),
	}

	for d, v := range confidenceOverrides {
		key := normalizeHost(d)
		if v <= 0 {
			delete(t.confidence, key)
			continue
		}
		t.confidence[key] = min(v, MaxConfidence)
	}
	for d, v := range scoringOverrides {
		t.scoring[normalizeHost(d)] = max(0, min(v, MaxBaseScore))
	}

	return t
}

// ExtractDomain returns the lowercased host of rawURL without a leading
// "www." and without a port. Unparseable input yields "".
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return normalizeHost(u.Hostname())
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}

// lookup matches host exactly, then walks its parent domains from the most
// specific one so news.example.com inherits example.com.
func lookup(table map[string]int, host string) (int, bool) {
	if host == "" {
		return 0, false
	}
	for h := host; ; {
		if score, ok := table[h]; ok {
			return score, true
		}
		dot := strings.IndexByte(h, '.')
		if dot < 0 {
			return 0, false
		}
		h = h[dot+1:]
	}
}

// IsTrustedDomain reports whether rawURL's host or a parent of it is in the
// strict table.
func (t *Tables) IsTrustedDomain(rawURL string) bool {
	_, ok := lookup(t.confidence, ExtractDomain(rawURL))
	return ok
}

// DomainConfidence is the strict lookup: 0 when the domain is not trusted.
func (t *Tables) DomainConfidence(rawURL string) int {
	score, _ := lookup(t.confidence, ExtractDomain(rawURL))
	return score
}

// BaseScore is the permissive lookup used by the scorer: UnknownBaseScore
// when the domain is not in the scoring table.
func (t *Tables) BaseScore(rawURL string) int {
	if score, ok := lookup(t.scoring, ExtractDomain(rawURL)); ok {
		return score
	}
	return UnknownBaseScore
}

// FilterToTrusted keeps links whose confidence is positive and at least
// minConfidence, annotates Confidence and Domain, and sorts by confidence
// descending. Equal confidences keep input order. The input is not modified.
func (t *Tables) FilterToTrusted(links []domain.Link, minConfidence int) []domain.Link {
	out := make([]domain.Link, 0, len(links))
	for _, link := range links {
		confidence := t.DomainConfidence(link.URL)
		if confidence <= 0 || confidence < minConfidence {
			continue
		}
		link.Confidence = confidence
		link.Domain = ExtractDomain(link.URL)
		out = append(out, link)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Annotate sets Confidence and Domain on every link from the strict table,
// keeping untrusted links with confidence 0.
func (t *Tables) Annotate(links []domain.Link) []domain.Link {
	out := domain.CloneLinks(links)
	for i := range out {
		out[i].Confidence = t.DomainConfidence(out[i].URL)
		out[i].Domain = ExtractDomain(out[i].URL)
	}
	return out
}
