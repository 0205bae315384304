package selection_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
)

type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	system string
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system = system
	f.prompt = prompt
	return f.reply, f.err
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveSelection(useCase, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, useCase+":"+outcome)
}

var fixedNow = func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) }

func candidates() []domain.Link {
	return []domain.Link{
		{URL: "https://glassdoor.com/acme", Title: "Acme reviews", Domain: "glassdoor.com", Confidence: 8, SourceCategory: "culture"},
		{URL: "https://acme.com/about", Title: "About Acme"},
		{URL: "https://acme.com/jobs/1", Title: "Job"},
	}
}

func newSelector(c selection.Completer, obs selection.Observer) *selection.ModelSelector {
	return selection.NewModelSelector(c, logger.NewNop(),
		selection.WithObserver(obs), selection.WithModelClock(fixedNow))
}

func TestModelSelector_EmptyCandidates(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{}
	obs := &recordingObserver{}
	got := newSelector(fc, obs).Select(context.Background(), selection.CompanyReviews,
		selection.Subject{Company: "Acme"}, nil, 6)

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, fc.calls)
	assert.Equal(t, []string{"company_reviews:empty"}, obs.outcomes)
}

func TestModelSelector_ParsesFencedReply(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{reply: "```json\n[" +
		`{"url":"https://glassdoor.com/acme","title":"","description":"Employee reviews","category":"Culture & Work Environment"},` +
		`{"url":"","title":"dropped","category":"Company News"},` +
		`{"url":"https://acme.com/about","title":"Acme earnings","category":"Made Up"}` +
		"]\n```"}
	obs := &recordingObserver{}

	got := newSelector(fc, obs).Select(context.Background(), selection.CompanyReviews,
		selection.Subject{Company: "Acme"}, candidates(), 6)

	want := []domain.Link{
		{
			URL:            "https://glassdoor.com/acme",
			Title:          "Acme reviews",
			Description:    "Employee reviews",
			Category:       "Culture & Work Environment",
			Domain:         "glassdoor.com",
			Confidence:     8,
			SourceCategory: "culture",
		},
		{URL: "https://acme.com/about", Title: "Acme earnings", Category: "Company News"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"company_reviews:model"}, obs.outcomes)
	assert.Equal(t, selection.CompanyReviews.System, fc.system)
	assert.Contains(t, fc.prompt, "https://acme.com/about")
	assert.Contains(t, fc.prompt, "Prioritize 2023-2025 content")
	assert.Contains(t, fc.prompt, `"Company News" | "Culture & Work Environment" | "Career Development"`)
}

func TestModelSelector_TruncatesToMaxLinks(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{reply: `[` +
		`{"url":"https://acme.com/jobs/1","category":"General Prep"},` +
		`{"url":"https://acme.com/about","category":"General Prep"},` +
		`{"url":"https://glassdoor.com/acme","category":"General Prep"}]`}

	got := newSelector(fc, nil).Select(context.Background(), selection.InterviewPrep,
		selection.Subject{Company: "Acme", JobTitle: "Engineer"}, candidates(), 2)

	require.Len(t, got, 2)
	assert.Equal(t, "https://acme.com/jobs/1", got[0].URL)
	assert.Contains(t, fc.prompt, "for a Engineer role at Acme")
}

func TestModelSelector_RepeatedURLKeptOnce(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{reply: `[` +
		`{"url":"https://acme.com/about","title":"About","category":"Company News"},` +
		`{"url":"https://acme.com/about","title":"About again","category":"Company News"},` +
		`{"url":"https://glassdoor.com/acme","category":"Culture & Work Environment"}]`}

	got := newSelector(fc, nil).Select(context.Background(), selection.CompanyReviews,
		selection.Subject{Company: "Acme"}, candidates(), 6)

	require.Len(t, got, 2)
	assert.Equal(t, "https://acme.com/about", got[0].URL)
	assert.Equal(t, "About", got[0].Title)
	assert.Equal(t, "https://glassdoor.com/acme", got[1].URL)
}

func TestModelSelector_DropsURLsOutsideCandidates(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{reply: `[` +
		`{"url":"https://acme.com/about","category":"Company News"},` +
		`{"url":"https://acme.com/jobs/123","title":"Invented posting","category":"Company News"}]`}
	obs := &recordingObserver{}

	got := newSelector(fc, obs).Select(context.Background(), selection.CompanyReviews,
		selection.Subject{Company: "Acme"}, candidates(), 6)

	require.Len(t, got, 1)
	assert.Equal(t, "https://acme.com/about", got[0].URL)
	assert.Equal(t, []string{"company_reviews:model"}, obs.outcomes)
}

func TestModelSelector_FallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "completer error", err: errors.New("upstream unavailable")},
		{name: "malformed json", reply: "Here are the links you asked for"},
		{name: "empty array", reply: "[]"},
		{name: "object instead of array", reply: `{"url":"x"}`},
		{name: "only empty urls", reply: `[{"url":"","category":"Company News"}]`},
		{name: "only unknown urls", reply: `[{"url":"https://elsewhere.example/x","category":"Company News"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obs := &recordingObserver{}
			got := newSelector(&fakeCompleter{reply: tt.reply, err: tt.err}, obs).
				Select(context.Background(), selection.CompanyOverview, selection.Subject{Company: "Acme"}, candidates(), 5)

			assert.Equal(t, selection.FallbackSelection(candidates(), 5), got)
			assert.Equal(t, []string{"company_overview:fallback"}, obs.outcomes)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1]", selection.StripCodeFence("  [1]  "))
	assert.Equal(t, "[1]", selection.StripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, "[1]", selection.StripCodeFence("```\n[1]\n```"))
	assert.Equal(t, "[1]", selection.StripCodeFence("```[1]"))
}

func TestUseCases_RenderEveryRubric(t *testing.T) {
	t.Parallel()

	for _, uc := range []selection.UseCase{
		selection.CompanyOverview, selection.SalaryBenefits, selection.CompanyReviews, selection.InterviewPrep,
	} {
		fc := &fakeCompleter{err: errors.New("offline")}
		_ = newSelector(fc, nil).Select(context.Background(), uc,
			selection.Subject{Company: "Acme", JobTitle: "Analyst"}, candidates(), 3)

		require.Equal(t, 1, fc.calls, uc.Name)
		assert.Contains(t, fc.prompt, "Acme", uc.Name)
		assert.Contains(t, fc.prompt, "YOU MUST RESPOND WITH ONLY VALID JSON", uc.Name)
		assert.Contains(t, uc.Categories, uc.DefaultCategory, uc.Name)
	}
}
