package domain

// Link is a candidate piece of information about a company. URL is its
// identity for deduplication.
type Link struct {
	URL            string          `json:"url"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category,omitempty"`
	CategoryKey    string          `json:"category_key,omitempty"`
	Score          int             `json:"score,omitempty"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Confidence     int             `json:"confidence,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	Kind           string          `json:"kind,omitempty"` // "video" or empty
	SourceCategory string          `json:"source_category,omitempty"`
	SourceQuery    *int            `json:"source_query,omitempty"`
}

// KindVideo marks links hosted on a video platform or carrying video metadata.
const KindVideo = "video"

// IsVideo reports whether the link was tagged as a video result.
func (l Link) IsVideo() bool {
	return l.Kind == KindVideo
}

// ScoreBreakdown holds the six scorer components. Their sum is the link score.
type ScoreBreakdown struct {
	Domain         int `json:"domain"`
	CompanyMatch   int `json:"company_match"`
	TitleRelevance int `json:"title_relevance"`
	Description    int `json:"description"`
	Freshness      int `json:"freshness"`
	URLQuality     int `json:"url_quality"`
}

// Total sums the components.
func (b ScoreBreakdown) Total() int {
	return b.Domain + b.CompanyMatch + b.TitleRelevance + b.Description + b.Freshness + b.URLQuality
}

// CloneLinks returns a shallow copy of links so callers can annotate
// entries without touching the input slice.
func CloneLinks(links []Link) []Link {
	if links == nil {
		return nil
	}
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
