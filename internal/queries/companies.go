package queries

import "strings"

var domainOverrides = map[string]string{
	"microsoft":       "microsoft.com",
	"amazon":          "amazon.com",
	"google":          "about.google",
	"meta":            "meta.com",
	"facebook":        "meta.com",
	"apple":           "apple.com",
	"tesla":           "tesla.com",
	"netflix":         "netflix.com",
	"walmart":         "walmart.com",
	"target":          "target.com",
	"starbucks":       "starbucks.com",
	"mcdonalds":       "mcdonalds.com",
	"coca-cola":       "coca-cola.com",
	"pepsi":           "pepsi.com",
	"nike":            "nike.com",
	"adidas":          "adidas.com",
	"intel":           "intel.com",
	"amd":             "amd.com",
	"nvidia":          "nvidia.com",
	"ibm":             "ibm.com",
	"oracle":          "oracle.com",
	"salesforce":      "salesforce.com",
	"adobe":           "adobe.com",
	"samsung":         "samsung.com",
	"sony":            "sony.com",
	"jpmorgan":        "jpmorganchase.com",
	"goldman sachs":   "goldmansachs.com",
	"morgan stanley":  "morganstanley.com",
	"bank of america": "bankofamerica.com",
	"wells fargo":     "wellsfargo.com",
	"citigroup":       "citigroup.com",
	"deloitte":        "deloitte.com",
	"pwc":             "pwc.com",
	"ey":              "ey.com",
	"kpmg":            "kpmg.com",
	"mckinsey":        "mckinsey.com",
	"bcg":             "bcg.com",
	"bain":            "bain.com",
}

// Companies whose names are made of common words and must be searched as
// an exact phrase.
var exactMatchCompanies = toSet(
	"Medical City Dallas",
	"Medical City Healthcare",
	"Medical City Plano",
	"Medical City Fort Worth",
	"Medical City Arlington",
	"Medical City Las Colinas",
	"Medical City McKinney",
	"Medical City Lewisville",
	"Medical City Denton",
	"Medical City Weatherford",
	"General Motors",
	"General Electric",
	"General Dynamics",
	"General Mills",
	"United Airlines",
	"United Healthcare",
	"United Technologies",
	"American Airlines",
	"American Express",
	"Delta Air Lines",
	"Blue Origin",
	"Blue Cross Blue Shield",
	"State Farm",
	"Progressive Insurance",
	"Capital One",
	"First Republic",
	"Fifth Third Bank",
	"Citizens Bank",
	"Ally Financial",
	"Discovery Inc",
	"Target Corporation",
	"Best Buy",
	"Home Depot",
	"Dollar General",
	"Dollar Tree",
	"Family Dollar",
	"Big Lots",
	"Five Below",
	"Seven Eleven",
	"Circle K",
)

func toSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// DomainOverride returns a known domain for companies whose official
// website search is ambiguous.
func DomainOverride(company string) (string, bool) {
	d, ok := domainOverrides[strings.ToLower(strings.TrimSpace(company))]
	return d, ok
}

// FallbackDomain guesses "<company without spaces>.com".
func FallbackDomain(company string) string {
	return strings.ReplaceAll(strings.ToLower(company), " ", "") + ".com"
}

// NeedsExactMatch reports whether company must be quoted in searches.
func NeedsExactMatch(company string) bool {
	_, ok := exactMatchCompanies[strings.ToLower(strings.TrimSpace(company))]
	return ok
}

// FormatCompanyForSearch trims company and quotes it when needed.
func FormatCompanyForSearch(company string) string {
	company = strings.TrimSpace(company)
	if NeedsExactMatch(company) {
		return `"` + company + `"`
	}
	return company
}
