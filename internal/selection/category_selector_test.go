package selection_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
)

func TestCategorySet_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mission & Vision", selection.OverviewCategories.Label("mission_vision"))
	assert.Equal(t, "Retirement & 401K", selection.SalaryCategories.Label("retirement_401k"))
	assert.Equal(t, "Stock Options", selection.SalaryCategories.Label("stock_options"))
	assert.True(t, selection.OverviewCategories.Contains("news"))
	assert.False(t, selection.OverviewCategories.Contains("salary"))
}

func TestSelectTopPerCategory_Empty(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.OverviewCategories)
	assert.Empty(t, s.SelectTopPerCategory(map[string][]domain.Link{}, ""))
}

func TestSelectTopPerCategory_TakesHeadAndLabels(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.OverviewCategories)
	results := map[string][]domain.Link{
		"about_us": {
			{URL: "https://acme.com/about", Title: "About Acme", Description: "Who we are"},
			{URL: "https://acme.com/team", Title: "Team"},
		},
		"news": {},
	}

	got := s.SelectTopPerCategory(results, "")

	want := map[string]domain.Link{
		"about_us": {
			URL:         "https://acme.com/about",
			Title:       "About Acme",
			Description: "Who we are",
			Category:    "About Us",
			CategoryKey: "about_us",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SelectTopPerCategory mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, results["about_us"][0].Category, "input must not be mutated")
}

func TestSelectTopPerCategory_VideoFirst(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.OverviewCategories, selection.WithVideoFirst())
	results := map[string][]domain.Link{
		"social_media": {
			{URL: "https://acme.com/social"},
			{URL: "https://youtube.com/watch?v=1", Kind: domain.KindVideo},
		},
	}

	got := s.SelectTopPerCategory(results, "")
	assert.Equal(t, "https://youtube.com/watch?v=1", got["social_media"].URL)
	assert.Equal(t, "https://acme.com/social", results["social_media"][0].URL)
}

func TestSelectTopPerCategory_CompanyFilter(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.SalaryCategories, selection.WithCompanyFilter())
	results := map[string][]domain.Link{
		"salary": {
			{URL: "https://example.com/a", Title: "Unrelated pay guide"},
			{URL: "https://www.glassdoor.com/Salary/x", Title: "Salaries"},
		},
		"perks": {
			{URL: "https://blog.example.com/perks", Title: "Perks at Globex"},
			{URL: "https://acme.com/perks", Title: "Acme Corp perks"},
		},
		"equity": {
			{URL: "https://example.com/equity", Title: "Equity explained"},
		},
	}

	got := s.SelectTopPerCategory(results, "Acme Corp")

	require.Len(t, got, 2)
	assert.Equal(t, "https://www.glassdoor.com/Salary/x", got["salary"].URL)
	assert.Equal(t, "https://acme.com/perks", got["perks"].URL)
	assert.NotContains(t, got, "equity")
}

func TestSelectTopPerCategory_CompanyFilterNeedsCompany(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.SalaryCategories, selection.WithCompanyFilter())
	got := s.SelectTopPerCategory(map[string][]domain.Link{
		"equity": {{URL: "https://example.com/equity", Title: "Equity explained"}},
	}, "")

	assert.Contains(t, got, "equity")
}

func TestSelectTopPerCategory_CustomTrustedPass(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.SalaryCategories,
		selection.WithCompanyFilter(), selection.WithTrustedPass("payscale.com"))
	got := s.SelectTopPerCategory(map[string][]domain.Link{
		"salary": {
			{URL: "https://glassdoor.com/x", Title: "Salaries"},
			{URL: "https://payscale.com/x", Title: "Salaries"},
		},
	}, "Acme")

	assert.Equal(t, "https://payscale.com/x", got["salary"].URL)
}

func TestOrderByPriority(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.OverviewCategories)
	selected := map[string]domain.Link{
		"news":     {URL: "n"},
		"culture":  {URL: "c"},
		"about_us": {URL: "a"},
		"salary":   {URL: "not-in-priority"},
	}

	got := s.OrderByPriority(selected)

	urls := make([]string, 0, len(got))
	for _, l := range got {
		urls = append(urls, l.URL)
	}
	assert.Equal(t, []string{"a", "c", "n"}, urls)
}

func TestOrderByPriority_Salary(t *testing.T) {
	t.Parallel()

	s := selection.NewCategorySelector(selection.SalaryCategories)
	got := s.OrderByPriority(map[string]domain.Link{
		"benefits_comparison": {URL: "z"},
		"perks":               {URL: "p"},
		"benefits_landing":    {URL: "b"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].URL)
	assert.Equal(t, "p", got[1].URL)
	assert.Equal(t, "z", got[2].URL)
}
