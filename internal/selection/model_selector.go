package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/domain"
)

// Selection outcomes reported to the Observer.
const (
	OutcomeModel    = "model"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
)

const recentYearsSpan = 2

var errEmptySelection = errors.New("model returned no usable links")

// Completer sends one system + user prompt to a language model and returns
// the raw reply text.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Observer receives one call per Select.
type Observer interface {
	ObserveSelection(useCase, outcome string, elapsed time.Duration)
}

// Subject names what the links are about.
type Subject struct {
	Company  string
	JobTitle string
}

// ModelSelector picks links with a Completer and falls back to
// FallbackSelection on any failure. Select never returns an error.
type ModelSelector struct {
	completer Completer
	log       logger.Logger
	observer  Observer
	now       func() time.Time
}

// ModelSelectorOption configures a ModelSelector.
type ModelSelectorOption func(*ModelSelector)

func WithObserver(o Observer) ModelSelectorOption {
	return func(s *ModelSelector) { s.observer = o }
}

func WithModelClock(now func() time.Time) ModelSelectorOption {
	return func(s *ModelSelector) { s.now = now }
}

func NewModelSelector(completer Completer, log logger.Logger, opts ...ModelSelectorOption) *ModelSelector {
	s := &ModelSelector{
		completer: completer,
		log:       log.With(logger.Component("model-selector")),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type candidateLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type selectedLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Select returns at most maxLinks links chosen from candidates.
func (s *ModelSelector) Select(
	ctx context.Context, uc UseCase, subject Subject, candidates []domain.Link, maxLinks int,
) []domain.Link {
	start := s.now()
	if len(candidates) == 0 {
		s.observe(uc, OutcomeEmpty, start)
		return []domain.Link{}
	}

	links, err := s.selectWithModel(ctx, uc, subject, candidates, maxLinks)
	if err != nil {
		s.log.Warn("Model selection failed, using fallback",
			logger.String("use_case", uc.Name),
			logger.Int("candidates", len(candidates)),
			logger.Error(err),
		)
		s.observe(uc, OutcomeFallback, start)
		return FallbackSelection(candidates, maxLinks)
	}

	s.observe(uc, OutcomeModel, start)
	return links
}

func (s *ModelSelector) observe(uc UseCase, outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveSelection(uc.Name, outcome, s.now().Sub(start))
	}
}

func (s *ModelSelector) selectWithModel(
	ctx context.Context, uc UseCase, subject Subject, candidates []domain.Link, maxLinks int,
) ([]domain.Link, error) {
	prompt, err := s.buildPrompt(uc, subject, candidates, maxLinks)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, uc.System, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	var picked []selectedLink
	if err = json.Unmarshal([]byte(StripCodeFence(reply)), &picked); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	byURL := make(map[string]domain.Link, len(candidates))
	for _, c := range candidates {
		byURL[c.URL] = c
	}

	// Only candidate URLs are accepted, each at most once.
	out := make([]domain.Link, 0, len(picked))
	seen := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		link, known := byURL[p.URL]
		if !known {
			continue
		}
		if _, dup := seen[p.URL]; dup {
			continue
		}
		seen[p.URL] = struct{}{}
		if p.Title != "" {
			link.Title = p.Title
		}
		if p.Description != "" {
			link.Description = p.Description
		}
		link.Category = p.Category
		if !uc.allows(link.Category) {
			link.Category = uc.DefaultCategory
		}
		out = append(out, link)
	}

	if len(out) == 0 {
		return nil, errEmptySelection
	}
	if maxLinks > 0 && len(out) > maxLinks {
		out = out[:maxLinks]
	}
	return out, nil
}

func (s *ModelSelector) buildPrompt(uc UseCase, subject Subject, candidates []domain.Link, maxLinks int) (string, error) {
	compact := make([]candidateLink, 0, len(candidates))
	for _, c := range candidates {
		compact = append(compact, candidateLink{URL: c.URL, Title: c.Title, Description: c.Description})
	}
	linksJSON, err := json.MarshalIndent(compact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}

	quoted := make([]string, 0, len(uc.Categories))
	for _, c := range uc.Categories {
		quoted = append(quoted, `"`+c+`"`)
	}

	year := s.now().Year()
	var buf bytes.Buffer
	err = uc.Prompt.Execute(&buf, promptData{
		Company:    subject.Company,
		JobTitle:   subject.JobTitle,
		MaxLinks:   maxLinks,
		Year:       year,
		RecentFrom: year - recentYearsSpan,
		Links:      string(linksJSON),
		Categories: strings.Join(quoted, " | "),
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", uc.Name, err)
	}
	return buf.String(), nil
}

// StripCodeFence removes a surrounding ``` fence (and a "json" tag) that
// models sometimes add despite instructions.
func StripCodeFence(reply string) string {
	content := strings.TrimSpace(reply)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	parts := strings.SplitN(content, "```", 3)
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}
