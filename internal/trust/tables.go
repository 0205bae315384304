package trust

// confidenceScores is the strict table: official sources 10, professional
// platforms 8, reviews 7, boards and data 6, forums 5, social 3.
var confidenceScores = map[string]int{
	"bls.gov":           10,
	"onetonline.org":    10,
	"careeronestop.org": 10,
	"dol.gov":           10,
	"sec.gov":           10,

	"glassdoor.com":  8,
	"levels.fyi":     8,
	"linkedin.com":   8,
	"indeed.com":     8,
	"payscale.com":   8,
	"salary.com":     8,
	"comparably.com": 8,
	"shrm.org":       8,

	"github.com":        8,
	"leetcode.com":      8,
	"hackerrank.com":    8,
	"dice.com":          8,
	"geeksforgeeks.org": 7,
	"careercup.com":     7,

	"vault.com":            7,
	"repvue.com":           7,
	"blind.com":            7,
	"teamblind.com":        7,
	"fishbowlapp.com":      7,
	"fairygodboss.com":     7,
	"inhersight.com":       7,
	"greatplacetowork.com": 7,
	"kununu.com":           7,
	"ambitionbox.com":      7,
	"careerbliss.com":      7,
	"themuse.com":          7,
	"wellfound.com":        7,
	"thejobcrowd.com":      7,
	"joberty.com":          7,
	"ivyexec.com":          7,

	"totaljobs.com": 6,
	"idealist.org":  6,
	"jobcase.com":   6,

	"h1bdata.info":                6,
	"dnb.com":                     6,
	"salarytransparentstreet.com": 6,

	"interviewbuddy.net": 6,
	"careervillage.org":  6,

	"reddit.com": 5,
	"quora.com":  5,

	"tiktok.com":    3,
	"instagram.com": 3,
	"snapchat.com":  3,
	"meta.com":      3,
	"buffer.com":    3,
}

// scoringScores is the permissive 0-25 table used by the link scorer.
var scoringScores = map[string]int{
	"bls.gov": 25,
	"sec.gov": 25,
	"dol.gov": 25,

	"glassdoor.com":  20,
	"levels.fyi":     22,
	"linkedin.com":   18,
	"indeed.com":     18,
	"payscale.com":   20,
	"salary.com":     20,
	"comparably.com": 20,
	"blind.com":      20,
	"teamblind.com":  20,

	"github.com":     18,
	"leetcode.com":   18,
	"hackerrank.com": 16,

	"vault.com":            16,
	"repvue.com":           16,
	"fishbowlapp.com":      14,
	"fairygodboss.com":     14,
	"inhersight.com":       14,
	"greatplacetowork.com": 16,
	"themuse.com":          14,

	"reddit.com": 14,
	"quora.com":  10,

	"youtube.com": 15,
	"vimeo.com":   12,

	"zippia.com":      10,
	"careerbliss.com": 10,
}
