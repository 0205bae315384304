// Package autocomplete serves job-title and company suggestions from
// embedded lists.
package autocomplete

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxResults caps every suggestion list.
const MaxResults = 10

//go:embed data/job_titles.yaml
var jobTitlesYAML []byte

//go:embed data/companies.yaml
var companiesYAML []byte

// Index holds the suggestion lists in their file order.
type Index struct {
	jobTitles []string
	companies []string
}

// Load parses the embedded lists.
func Load() (*Index, error) {
	idx := &Index{}
	if err := yaml.Unmarshal(jobTitlesYAML, &idx.jobTitles); err != nil {
		return nil, fmt.Errorf("parse job_titles.yaml: %w", err)
	}
	if err := yaml.Unmarshal(companiesYAML, &idx.companies); err != nil {
		return nil, fmt.Errorf("parse companies.yaml: %w", err)
	}
	return idx, nil
}

// New builds an index over the given lists.
func New(jobTitles, companies []string) *Index {
	return &Index{jobTitles: jobTitles, companies: companies}
}

// JobTitles returns titles containing q, case-insensitively.
func (i *Index) JobTitles(q string) []string {
	query := strings.ToLower(q)
	out := make([]string, 0, MaxResults)
	for _, t := range i.jobTitles {
		if strings.Contains(strings.ToLower(t), query) {
			out = append(out, t)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// Companies returns companies starting with q, then those containing it.
func (i *Index) Companies(q string) []string {
	query := strings.ToLower(q)

	var prefix, contains []string
	for _, c := range i.companies {
		lower := strings.ToLower(c)
		switch {
		case strings.HasPrefix(lower, query):
			prefix = append(prefix, c)
		case strings.Contains(lower, query):
			contains = append(contains, c)
		}
	}

	out := append(prefix, contains...)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	if out == nil {
		out = []string{}
	}
	return out
}
