// Package format prepares links for display.
package format

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// UnknownSite is returned when no host can be read from a URL.
const UnknownSite = "Unknown"

const titleSeparator = " | "

var knownSites = map[string]string{
	"nytimes":  "New York Times",
	"wsj":      "Wall Street Journal",
	"github":   "GitHub",
	"linkedin": "LinkedIn",
	"openai":   "OpenAI",
}

var shortenSeparators = []string{" | ", " - ", " — ", " · ", " » ", ": "}

var titleCaser = cases.Title(language.English)

// ForDisplay returns link with a "Page Title | Site Name" title. Titles
// that already contain " | " are left alone and an empty title becomes
// the site name.
func ForDisplay(link domain.Link) domain.Link {
	if strings.Contains(link.Title, titleSeparator) {
		return link
	}

	site := InferSiteName(link.URL)
	if link.Title == "" {
		link.Title = site
		return link
	}
	link.Title = link.Title + titleSeparator + site
	return link
}

// ForDisplayAll applies ForDisplay to every link.
func ForDisplayAll(links []domain.Link) []domain.Link {
	out := make([]domain.Link, 0, len(links))
	for _, l := range links {
		out = append(out, ForDisplay(l))
	}
	return out
}

// InferSiteName turns a URL into a readable site name from its registrable
// domain: "https://blog.mcgovern.org/x" -> "Mcgovern",
// "https://www.nytimes.com" -> "New York Times".
func InferSiteName(rawURL string) string {
	host := hostOf(rawURL)
	if host == "" {
		return UnknownSite
	}

	label := registrableLabel(host)
	if name, ok := knownSites[label]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(label, "-", " "))
}

func hostOf(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// registrableLabel returns the label left of the public suffix, or the
// whole host for IPs and single-label hosts.
func registrableLabel(host string) string {
	etldPlusOne, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	suffix, _ := publicsuffix.PublicSuffix(host)
	return strings.TrimSuffix(etldPlusOne, "."+suffix)
}

// ShortenTitle cuts title at the first separator found, trying " | " first.
func ShortenTitle(title string) string {
	if title == "" {
		return ""
	}
	for _, sep := range shortenSeparators {
		if before, _, found := strings.Cut(title, sep); found {
			return strings.TrimSpace(before)
		}
	}
	return strings.TrimSpace(title)
}
