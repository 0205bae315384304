package queries

import "fmt"

// Review query keys, in flattening order.
const (
	ReviewNews    = "news"
	ReviewCulture = "culture"
	ReviewCareer  = "career"
)

// ReviewCategories is the order review results are flattened in.
var ReviewCategories = []string{ReviewNews, ReviewCulture, ReviewCareer}

// ReviewQueries builds the news, culture and career queries. The news
// query asks for the previous and current year.
func ReviewQueries(company string, year int) map[string]string {
	return map[string]string{
		ReviewNews:    fmt.Sprintf("%s merges purchases earnings %d %d", company, year-1, year),
		ReviewCulture: company + " employee reviews culture work-life balance glassdoor comparably blind indeed",
		ReviewCareer:  company + " career growth promotion training development glassdoor comparably",
	}
}
