package queries

import (
	"fmt"
	"strings"
)

// CompanyOverviewQueries builds the nine site-restricted overview queries,
// keyed by overview category.
func CompanyOverviewQueries(company, companyDomain, jobTitle string) map[string]string {
	family := InferJobFamily(jobTitle)

	return map[string]string{
		"about_us":       fmt.Sprintf(`%s ("about us") site:%s`, company, companyDomain),
		"mission_vision": fmt.Sprintf(`%s ("mission statement" OR "vision statement") site:%s language:en`, company, companyDomain),
		"culture": fmt.Sprintf(`%s ("company culture" OR "company values" OR "corporate culture" OR "organization culture" OR DEI OR "work environment") site:%s`,
			company, companyDomain),
		"department":   DepartmentQuery(company, companyDomain, jobTitle, family),
		"social_media": fmt.Sprintf(`%s (LinkedIn OR Facebook OR Instagram OR TikTok OR YouTube OR podcast) site:%s`, company, companyDomain),
		"history":      fmt.Sprintf(`%s (history OR growth) site:%s`, company, companyDomain),
		"community": fmt.Sprintf(`%s ("community engagement" OR "community involvement" OR "giving back") site:%s`,
			company, companyDomain),
		"financials": fmt.Sprintf(`%s ("financial reports" OR "quarterly reports" OR "stock reports") site:%s`, company, companyDomain),
		"news":       fmt.Sprintf(`%s (news OR updates) site:%s`, company, companyDomain),
	}
}

// DepartmentQuery ORs four strategies: the exact job title, the job
// family's department, the family's team overview pages, and its
// leadership pages.
func DepartmentQuery(company, companyDomain, jobTitle, family string) string {
	variations := []string{
		fmt.Sprintf(`"%s" (team OR group OR department OR "leadership team")`, jobTitle),
		family + " department",
		family + " (team OR department OR group) AND (scope OR inside OR look OR overview)",
		family + ` ("leadership team" OR "executive leadership")`,
	}

	wrapped := make([]string, 0, len(variations))
	for _, v := range variations {
		wrapped = append(wrapped, "("+v+")")
	}
	return fmt.Sprintf("%s (%s) site:%s", company, strings.Join(wrapped, " OR "), companyDomain)
}
