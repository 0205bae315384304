package selection

import "text/template"

// UseCase is one model-assisted selection rubric.
type UseCase struct {
	Name   string
	System string
	// Prompt is executed with promptData.
	Prompt *template.Template
	// Categories are the labels the model must choose from. Any other
	// label is replaced by DefaultCategory.
	Categories      []string
	DefaultCategory string
}

func (u UseCase) allows(category string) bool {
	for _, c := range u.Categories {
		if c == category {
			return true
		}
	}
	return false
}

type promptData struct {
	Company    string
	JobTitle   string
	MaxLinks   int
	Year       int
	RecentFrom int
	Links      string
	Categories string
}

const responseContract = `
Available links:
{{.Links}}

YOU MUST RESPOND WITH ONLY VALID JSON. NO MARKDOWN. NO CODE BLOCKS. NO EXPLANATIONS.

Return a JSON array of objects:
[
  {
    "url": "full URL",
    "title": "page title",
    "description": "description",
    "category": {{.Categories}}
  }
]`

func mustPrompt(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body + responseContract))
}

var CompanyOverview = UseCase{
	Name:   "company_overview",
	System: "You are a research assistant. You ONLY respond with valid JSON arrays. Never use markdown code blocks.",
	Prompt: mustPrompt("company_overview", `You are analyzing search results about {{.Company}} to find the most valuable links for someone researching the company.

Select the {{.MaxLinks}} MOST RELEVANT links. Prioritize:
1. Official "About Us" pages with mission/values
2. Company culture and values pages
3. Main company LinkedIn profile (not individual employee profiles)
4. Executive leadership pages or CEO content
5. Company overview/history pages
6. Main Instagram/Twitter accounts (not regional or individual)

AVOID:
- Individual job postings (but company careers page is OK)
- Specific location/store pages
- Technical documentation or PDFs
- Press releases about specific products
- Individual employee LinkedIn profiles
- Blog posts unless they're about company mission/values
`),
	Categories:      []string{"About & Mission", "Culture & Values", "Leadership", "Social Media", "Company Overview"},
	DefaultCategory: "Company Overview",
}

var SalaryBenefits = UseCase{
	Name:   "salary_benefits",
	System: "You are a compensation research assistant. You ONLY respond with valid JSON arrays. Never use markdown code blocks.",
	Prompt: mustPrompt("salary_benefits", `You are analyzing search results about {{.Company}} compensation and benefits for a {{.JobTitle}} role.

Select the {{.MaxLinks}} MOST RELEVANT links. Prioritize:
1. Glassdoor, Levels.fyi, Payscale, Indeed, Built In - salary aggregators
2. Links with SPECIFIC NUMBERS: salary ranges, 401k match %, PTO days, equity details
3. Employee reviews mentioning compensation and benefits
4. Company benefits pages with detailed package information

AVOID:
- Job postings (they say "competitive salary" but no real data)
- News articles unless they have specific compensation data
- Generic "how to negotiate salary" articles
- Links without concrete salary or benefits information
`),
	Categories:      []string{"Salary Data", "Benefits & Perks", "Employee Reviews", "Compensation Overview"},
	DefaultCategory: "Compensation Overview",
}

var CompanyReviews = UseCase{
	Name:   "company_reviews",
	System: "You are a company research assistant. You ONLY respond with valid JSON arrays. Never use markdown code blocks. Select EXACTLY 2 links per category.",
	Prompt: mustPrompt("company_reviews", `You are analyzing search results about {{.Company}} to find insights on company news, culture, and career development.

Select {{.MaxLinks}} links - EXACTLY 2 FROM EACH CATEGORY:

**Company News & Updates (2 links):**
- Recent news & earnings reports
- Financial performance, growth initiatives
- Executive changes, mergers, acquisitions
- Prioritize {{.RecentFrom}}-{{.Year}} content

**Culture & Work Environment (2 links):**
- Employee reviews about culture and values
- Work-life balance, remote work policies
- Team dynamics, diversity initiatives
- What makes this company unique

**Career Development (2 links):**
- Promotion paths and career progression
- Training programs, tuition reimbursement
- Mentorship and professional development
- Employee growth opportunities

Prioritize:
1. Glassdoor, Comparably, Blind, Indeed, LinkedIn for culture/career
2. Recent content ({{.RecentFrom}}-{{.Year}}) for news
3. Employee perspectives over company press releases
4. Specific examples and data over generic statements

AVOID:
- Company press releases (too biased)
- Individual job postings
- Old news (pre-{{.RecentFrom}})
- Generic articles without specific insights
`),
	Categories:      []string{"Company News", "Culture & Work Environment", "Career Development"},
	DefaultCategory: "Company News",
}

var InterviewPrep = UseCase{
	Name:   "interview_prep",
	System: "You are an interview preparation research assistant. You ONLY respond with valid JSON arrays. Never use markdown code blocks. Prioritize quality over quantity.",
	Prompt: mustPrompt("interview_prep", `You are analyzing search results to find interview preparation resources for a {{.JobTitle}} role at {{.Company}}.

Select UP TO {{.MaxLinks}} links using this PRIORITY ORDER:

**Priority 1 (HIGHEST): Company-Specific Interview Questions**
- Actual interview questions asked at {{.Company}}
- Employee interview experiences from Glassdoor, Blind, Reddit
- {{.Company}}-specific interview process and format
- Real candidate stories and experiences

**Priority 2 (HIGH): Company Tech Stack & Tools**
- Technologies and tools used at {{.Company}}
- Programming languages, frameworks, platforms they use
- Company engineering blog posts about their stack
- Methodologies and processes specific to {{.Company}}

**Priority 3 (MEDIUM): Technical Skills for {{.JobTitle}}**
- Core competencies needed for this role
- Technical knowledge areas to review
- Skills and concepts relevant to {{.JobTitle}}

**Priority 4 (LOW - Use as filler only): Generic Interview Prep**
- General interview tips for {{.JobTitle}} across companies
- Common behavioral questions
- General advice (only if nothing better available)

Prioritize:
1. Glassdoor interview sections and Blind posts (real experiences)
2. Company engineering blogs (official tech stack info)
3. Specific examples over generic advice
4. Recent content ({{.RecentFrom}}-{{.Year}})

AVOID:
- Job postings
- Generic "10 interview tips" clickbait articles
- Content with no specific, actionable information
- Paywalled content that doesn't show preview info

IMPORTANT: Quality over quantity - don't force links if good content isn't available.
`),
	Categories:      []string{"Company Interview Questions", "Tech Stack & Tools", "Technical Skills", "General Prep"},
	DefaultCategory: "General Prep",
}
