package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
	"github.com/jonesrussell/north-cloud/company-research/internal/search"
)

type stubDomainSearcher struct {
	results []domain.Link
	err     error
	query   string
	count   int
}

func (s *stubDomainSearcher) SearchN(_ context.Context, query, _ string, count int) ([]domain.Link, error) {
	s.query = query
	s.count = count
	return s.results, s.err
}

func TestDomainIdentifier_PicksOfficialSite(t *testing.T) {
	t.Parallel()

	stub := &stubDomainSearcher{results: []domain.Link{
		{URL: "https://en.wikipedia.org/wiki/Acme", Title: "Acme - Wikipedia"},
		{URL: "https://docs.acme.com/", Title: "Acme docs"},
		{URL: "https://news.example.com/acme-story", Title: "Acme in the news"},
		{URL: "https://www.acme.com/", Title: "Acme | Official Site", Description: "Welcome to Acme"},
	}}

	got := search.NewDomainIdentifier(stub, logger.NewNop()).Identify(context.Background(), "Acme")

	assert.Equal(t, "acme.com", got)
	assert.Equal(t, "Acme official website", stub.query)
	assert.Equal(t, 10, stub.count)
}

func TestDomainIdentifier_SearchError(t *testing.T) {
	t.Parallel()

	stub := &stubDomainSearcher{err: errors.New("boom")}
	assert.Empty(t, search.NewDomainIdentifier(stub, logger.NewNop()).Identify(context.Background(), "Acme"))
}

func TestBestDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		company string
		results []domain.Link
		want    string
	}{
		{name: "no results", company: "Acme", want: ""},
		{
			name:    "only excluded hosts",
			company: "Acme",
			results: []domain.Link{{URL: "https://www.glassdoor.com/acme"}, {URL: "https://reddit.com/r/acme"}},
			want:    "",
		},
		{
			name:    "auxiliary subdomain is the fallback",
			company: "Globex",
			results: []domain.Link{{URL: "https://www.linkedin.com/company/x"}, {URL: "https://support.initech.com/help"}},
			want:    "support.initech.com",
		},
		{
			name:    "repeated host accumulates",
			company: "Zeta",
			results: []domain.Link{
				{URL: "https://first.example.com/a/b", Title: "x"},
				{URL: "https://second.example.org/a", Title: "y"},
				{URL: "https://second.example.org/b", Title: "y"},
			},
			want: "second.example.org",
		},
		{
			name:    "earlier rank scores higher",
			company: "Zeta",
			results: []domain.Link{
				{URL: "https://b.example.com/a"},
				{URL: "https://a.example.com/a"},
			},
			want: "b.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, search.BestDomain(tt.company, tt.results))
		})
	}
}
