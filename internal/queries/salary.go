package queries

import (
	"fmt"
	"strings"
)

const (
	salaryTerms = `(salary OR "pay rate" OR "total compensation package" OR compensation)`
	salarySites = `(site:glassdoor.com OR site:indeed.com OR site:levels.fyi OR site:payscale.com OR site:salary.com ` +
		`OR site:ambitionbox.com OR site:comparably.com OR site:blind.com OR site:h1bdata.info OR site:bls.gov)`
	salaryExclusions = `-jobs -hiring -"job posting" -careers -apply`

	reviewSites = `(site:glassdoor.com OR site:indeed.com OR site:ambitionbox.com OR site:blind.com OR site:levels.fyi ` +
		`OR site:reddit.com OR site:fishbowlapp.com OR site:h1bdata.info)`
	reviewTerms = `("employee reviews" OR reviews OR ranking OR rating OR feedback OR experiences)`
)

// SalaryQuery targets salary aggregators. The location is dropped for
// remote roles, whether given as "REMOTE" or the parsed "Remote". The
// state is unused.
func SalaryQuery(company, jobTitle, location, _ string) string {
	parts := []string{
		FormatCompanyForSearch(company) + " " + jobTitle,
	}
	if location != "" && !strings.EqualFold(location, LocationRemote) {
		parts = append(parts, location)
	}
	parts = append(parts, salaryTerms, salarySites, salaryExclusions)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// SalaryBenefitsQueries builds the ten salary and benefits queries, keyed
// by salary category.
func SalaryBenefitsQueries(company, companyDomain, jobTitle, location, state string) map[string]string {
	c := FormatCompanyForSearch(company)

	return map[string]string{
		"benefits_landing": fmt.Sprintf(`%s (benefits OR retirement OR insurance OR "total rewards" OR healthcare OR perks) site:%s`,
			c, companyDomain),
		"perks": fmt.Sprintf(`%s (perks OR "show appreciation to employees" OR "pros of working for %s" OR "why working for %s is" (fun OR great OR awesome))`,
			c, company, company),
		"erg_groups": fmt.Sprintf(`%s (ERG OR "employee resource groups") site:%s`, c, companyDomain),
		"salary":     SalaryQuery(company, jobTitle, location, state),
		"equity": fmt.Sprintf(`%s %s (stock OR RSU OR vesting OR bonus OR equity) (site:levels.fyi OR site:ambitionbox.com `+
			`OR site:fishbowlapp.com OR site:glassdoor.com OR site:reddit.com OR site:youtube.com OR site:%s)`,
			c, jobTitle, companyDomain),
		"health_insurance": fmt.Sprintf(`%s ("employee reviews" OR reviews OR ranking OR rating OR feedback) `+
			`("health insurance" OR "medical insurance" OR "healthcare benefits" OR "total rewards") AND ("life insurance" OR "life coverage") `+
			`(site:glassdoor.com OR site:indeed.com OR site:ambitionbox.com OR site:blind.com OR site:levels.fyi OR site:reddit.com `+
			`OR site:fishbowlapp.com OR site:greatplacetowork.com OR site:vault.com)`, c),
		"insurance_cost": fmt.Sprintf(`%s (costs OR price OR premium OR rates) ("employee reviews" OR reviews OR ranking OR rating) `+
			`("health insurance" OR "medical insurance" OR "healthcare benefits" OR "healthcare cost" OR "benefits breakdown") %s`,
			c, reviewSites),
		"retirement_401k": fmt.Sprintf(`%s %s (401K OR 401b OR "retirement options" OR "retirement plan" OR "retirement benefits" `+
			`OR retirement OR pension OR saving OR "matching contribution") %s`, c, reviewTerms, reviewSites),
		"pay_increases": fmt.Sprintf(`%s ("annual pay increase" OR "annual raise" OR "salary increase" OR "salary raise" OR "pay adjustment" `+
			`OR "merit increase" OR "wage increase" OR "performance reviews" OR "cost of living") %s %s`, c, reviewTerms, reviewSites),
		"benefits_comparison": fmt.Sprintf(`%s ("benefits package" OR "employee benefits" OR "compensation package" OR "health benefits" `+
			`OR "retirement benefits") AND ("compare" OR "comparison" OR "market standards" OR "industry standards" OR "competitive" OR "value")`, c),
	}
}
