package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxLinksLimit caps max_links on every endpoint.
	MaxLinksLimit = 20

	DefaultCompanyInfoLinks    = 9
	DefaultSalaryBenefitsLinks = 5
	DefaultReviewLinks         = 6
	DefaultInterviewPrepLinks  = 6

	// LocationRemote is the salary endpoint's default location.
	LocationRemote = "REMOTE"
)

// ResearchRequest is the shared input of the four research endpoints.
// Endpoints ignore the fields they do not use.
type ResearchRequest struct {
	Company  string `json:"company"   form:"company"`
	JobTitle string `json:"job_title" form:"job_title"`
	Location string `json:"location"  form:"location"`
	MaxLinks int    `json:"max_links" form:"max_links"`
	NoCache  bool   `json:"no_cache"  form:"no_cache"`
}

// ValidationError reports a missing or out-of-range request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Validate trims the request, checks required fields and applies
// defaultMaxLinks when MaxLinks is zero.
func (r *ResearchRequest) Validate(requireJobTitle bool, defaultMaxLinks int) error {
	r.Company = strings.TrimSpace(r.Company)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Location = strings.TrimSpace(r.Location)

	if r.Company == "" {
		return &ValidationError{Field: "company", Message: "is required"}
	}
	if requireJobTitle && r.JobTitle == "" {
		return &ValidationError{Field: "job_title", Message: "is required"}
	}

	if r.MaxLinks == 0 {
		r.MaxLinks = defaultMaxLinks
	}
	if r.MaxLinks < 1 || r.MaxLinks > MaxLinksLimit {
		return &ValidationError{Field: "max_links", Message: fmt.Sprintf("must be between 1 and %d", MaxLinksLimit)}
	}
	return nil
}

// CompanyInfoResult is the company overview response.
type CompanyInfoResult struct {
	Domain     string `json:"domain"`
	Links      []Link `json:"links"`
	TotalFound int    `json:"total_found"`
	Error      string `json:"error,omitempty"`
}

// SalaryBenefitsResult is the salary and benefits response.
type SalaryBenefitsResult struct {
	Company    string `json:"company"`
	JobTitle   string `json:"job_title"`
	Location   string `json:"location"`
	Links      []Link `json:"links"`
	TotalFound int    `json:"total_found"`
}

// CompanyReviewsResult is the reviews response. TotalFound counts unique
// links before filtering.
type CompanyReviewsResult struct {
	Company    string `json:"company"`
	Links      []Link `json:"links"`
	TotalFound int    `json:"total_found"`
}

// InterviewPrepResult is the interview preparation response.
type InterviewPrepResult struct {
	Company    string `json:"company"`
	JobTitle   string `json:"job_title"`
	JobFamily  string `json:"job_family"`
	Links      []Link `json:"links"`
	TotalFound int    `json:"total_found"`
}

// ScoreLinksRequest asks for links to be scored and filtered.
type ScoreLinksRequest struct {
	Links     []Link `json:"links"`
	Company   string `json:"company"`
	Category  string `json:"category"`
	Threshold int    `json:"threshold"`
	MaxLinks  int    `json:"max_links"`
}

// ScoreLinksResult carries the links at or above threshold plus every
// scored link, both sorted by score.
type ScoreLinksResult struct {
	Links     []Link `json:"links"`
	AllScored []Link `json:"all_scored"`
	Threshold int    `json:"threshold"`
}
