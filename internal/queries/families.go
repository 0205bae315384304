// Package queries builds the Brave search queries for each research
// endpoint, plus the job-family, domain-override and location helpers
// those queries depend on.
package queries

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneralFamily is returned when no job family keyword matches.
const GeneralFamily = "General"

//go:embed data/job_families.yaml
var jobFamiliesYAML []byte

//go:embed data/interview_templates.yaml
var interviewTemplatesYAML []byte

// JobFamily is a named group of job-title keywords.
type JobFamily struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

var (
	jobFamilies        = mustLoadFamilies()
	interviewTemplates = mustLoadTemplates()
)

func mustLoadFamilies() []JobFamily {
	var families []JobFamily
	if err := yaml.Unmarshal(jobFamiliesYAML, &families); err != nil {
		panic(fmt.Sprintf("queries: parse job_families.yaml: %v", err))
	}
	return families
}

func mustLoadTemplates() map[string][]string {
	var templates map[string][]string
	if err := yaml.Unmarshal(interviewTemplatesYAML, &templates); err != nil {
		panic(fmt.Sprintf("queries: parse interview_templates.yaml: %v", err))
	}
	if _, ok := templates[GeneralFamily]; !ok {
		panic("queries: interview_templates.yaml has no General entry")
	}
	return templates
}

// JobFamilies returns the families in match order.
func JobFamilies() []JobFamily {
	out := make([]JobFamily, len(jobFamilies))
	copy(out, jobFamilies)
	return out
}

// InferJobFamily returns the first family with a keyword contained in the
// lowercased title, or GeneralFamily.
func InferJobFamily(jobTitle string) string {
	normalized := strings.ToLower(strings.TrimSpace(jobTitle))
	for _, family := range jobFamilies {
		for _, keyword := range family.Keywords {
			if strings.Contains(normalized, keyword) {
				return family.Name
			}
		}
	}
	return GeneralFamily
}

// InterviewPrepQueries returns the family's query templates filled in with
// company and jobTitle. Unknown families get the general set.
func InterviewPrepQueries(company, jobTitle, family string) []string {
	templates, ok := interviewTemplates[family]
	if !ok {
		templates = interviewTemplates[GeneralFamily]
	}

	r := strings.NewReplacer("{company}", company, "{job_title}", jobTitle)
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, r.Replace(t))
	}
	return out
}
