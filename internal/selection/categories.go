// Package selection turns per-category search results into a short, ordered
// list of links, either by rule (one top link per category in a fixed
// priority order) or with a model-assisted pick that falls back to a
// keyword heuristic.
package selection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategorySet is a fixed priority order of category keys plus display labels.
type CategorySet struct {
	Name     string
	Priority []string
	Labels   map[string]string
}

var titleCaser = cases.Title(language.English)

// Label returns the display label for key. Unknown keys are title-cased
// with underscores as spaces ("stock_options" -> "Stock Options").
func (s CategorySet) Label(key string) string {
	if label, ok := s.Labels[key]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Contains reports whether key is in the priority list.
func (s CategorySet) Contains(key string) bool {
	for _, k := range s.Priority {
		if k == key {
			return true
		}
	}
	return false
}

// OverviewCategories is the company overview set.
var OverviewCategories = CategorySet{
	Name: "company_overview",
	Priority: []string{
		"about_us",
		"mission_vision",
		"culture",
		"department",
		"social_media",
		"history",
		"community",
		"financials",
		"news",
	},
	Labels: map[string]string{
		"about_us":       "About Us",
		"mission_vision": "Mission & Vision",
		"culture":        "Company Culture",
		"department":     "Department & Leadership",
		"social_media":   "Social Media",
		"history":        "Company History",
		"community":      "Community Engagement",
		"financials":     "Financial Reports",
		"news":           "Recent News",
	},
}

// SalaryCategories is the salary and benefits set.
var SalaryCategories = CategorySet{
	Name: "salary_benefits",
	Priority: []string{
		"benefits_landing",
		"perks",
		"erg_groups",
		"salary",
		"equity",
		"health_insurance",
		"insurance_cost",
		"retirement_401k",
		"pay_increases",
		"benefits_comparison",
	},
	Labels: map[string]string{
		"benefits_landing":    "Benefits Overview",
		"perks":               "Company Perks",
		"erg_groups":          "Employee Resource Groups",
		"salary":              "Salary Information",
		"equity":              "Stock & Equity",
		"health_insurance":    "Health Insurance Reviews",
		"insurance_cost":      "Insurance Cost Reviews",
		"retirement_401k":     "Retirement & 401K",
		"pay_increases":       "Pay Increases & Raises",
		"benefits_comparison": "Benefits Comparison",
	},
}
