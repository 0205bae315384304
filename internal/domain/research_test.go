package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

func TestResearchRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		req             domain.ResearchRequest
		requireJobTitle bool
		wantField       string
		wantMaxLinks    int
	}{
		{name: "defaults max links", req: domain.ResearchRequest{Company: " Acme "}, wantMaxLinks: 6},
		{name: "missing company", req: domain.ResearchRequest{Company: "   "}, wantField: "company"},
		{
			name:            "missing job title",
			req:             domain.ResearchRequest{Company: "Acme"},
			requireJobTitle: true,
			wantField:       "job_title",
		},
		{name: "max links too high", req: domain.ResearchRequest{Company: "Acme", MaxLinks: 21}, wantField: "max_links"},
		{name: "max links negative", req: domain.ResearchRequest{Company: "Acme", MaxLinks: -1}, wantField: "max_links"},
		{name: "explicit max links", req: domain.ResearchRequest{Company: "Acme", MaxLinks: 20}, wantMaxLinks: 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := tc.req
			err := req.Validate(tc.requireJobTitle, domain.DefaultReviewLinks)
			if tc.wantField != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.wantField, vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMaxLinks, req.MaxLinks)
			assert.Equal(t, "Acme", req.Company)
		})
	}
}

func TestScoreBreakdown_Total(t *testing.T) {
	t.Parallel()

	b := domain.ScoreBreakdown{Domain: 20, CompanyMatch: 25, TitleRelevance: 13, Description: 12, Freshness: 7, URLQuality: 3}
	assert.Equal(t, 80, b.Total())
}

func TestCloneLinks(t *testing.T) {
	t.Parallel()

	in := []domain.Link{{URL: "https://a.example"}}
	out := domain.CloneLinks(in)
	out[0].Title = "changed"

	assert.Empty(t, in[0].Title)
	assert.Nil(t, domain.CloneLinks(nil))
}
