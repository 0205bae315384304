// Package filter drops low-value links and deduplicates the rest.
package filter

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// URLPatterns are lowercase URL substrings for job postings, auth pages and
// individual social profiles.
var URLPatterns = []string{
	"/jobs/",
	"/careers/apply",
	"/job/",
	"/positions/",
	"/apply/",
	"/login",
	"/signin",
	"/signup",
	"/register",
	"/in/",
}

// TitlePatterns are lowercase title substrings for layoff news.
var TitlePatterns = []string{
	"layoff",
	"layoffs",
	"lay off",
	"lay offs",
	"downsizing",
	"job cuts",
	"workforce reduction",
}

// Blacklist matches URLs and titles against two Aho-Corasick automata.
// It is safe for concurrent use.
type Blacklist struct {
	urls  *ahocorasick.Matcher
	title *ahocorasick.Matcher
}

// NewBlacklist builds a blacklist. Patterns are lowercased.
func NewBlacklist(urlPatterns, titlePatterns []string) *Blacklist {
	return &Blacklist{
		urls:  buildMatcher(urlPatterns),
		title: buildMatcher(titlePatterns),
	}
}

// DefaultBlacklist uses URLPatterns and TitlePatterns.
func DefaultBlacklist() *Blacklist {
	return NewBlacklist(URLPatterns, TitlePatterns)
}

func buildMatcher(patterns []string) *ahocorasick.Matcher {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(p); p != "" {
			normalized = append(normalized, p)
		}
	}
	if len(normalized) == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(normalized)
}

// IsBlacklisted reports whether the lowercased URL or title contains any pattern.
func (b *Blacklist) IsBlacklisted(link domain.Link) bool {
	return matches(b.urls, link.URL) || matches(b.title, link.Title)
}

func matches(m *ahocorasick.Matcher, text string) bool {
	if m == nil || text == "" {
		return false
	}
	// Match keeps per-call state on the Matcher; MatchThreadSafe does not.
	return len(m.MatchThreadSafe([]byte(strings.ToLower(text)))) > 0
}

// FilterBlacklisted returns the links that are not blacklisted, in input order.
func (b *Blacklist) FilterBlacklisted(links []domain.Link) []domain.Link {
	out := make([]domain.Link, 0, len(links))
	for _, link := range links {
		if !b.IsBlacklisted(link) {
			out = append(out, link)
		}
	}
	return out
}
