// Package llm is the Anthropic Messages API completer behind the
// model-assisted link selector.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/circuitbreaker"
	infrahttp "github.com/jonesrussell/north-cloud/company-research/infrastructure/http"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
)

// ErrNotConfigured is returned by Complete when no API key is set.
var ErrNotConfigured = errors.New("llm: anthropic api key not configured")

const (
	defaultMaxTokens   = 800
	defaultTemperature = 0.3
	defaultTimeout     = 15 * time.Second
	sdkMaxRetries      = 1
)

// Config configures the completer.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Client implements selection.Completer over the Messages API.
type Client struct {
	api        anthropic.Client
	configured bool
	cfg        Config
	breaker    *circuitbreaker.Breaker
	tracer     trace.Tracer
	log        logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	log = log.With(logger.Component("llm"))

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(sdkMaxRetries),
		option.WithHTTPClient(infrahttp.NewClient(infrahttp.ClientConfig{
			Timeout:  cfg.Timeout,
			SpanName: "anthropic.messages",
		})),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		log.Warn("LLM circuit breaker state changed",
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	}

	return &Client{
		api:        anthropic.NewClient(opts...),
		configured: cfg.APIKey != "",
		cfg:        cfg,
		breaker:    circuitbreaker.New(breakerCfg),
		tracer:     otel.Tracer("company-research"),
		log:        log,
	}
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.configured
}

// Complete sends one system + user turn and returns the concatenated text
// blocks of the reply.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	ctx, span := c.tracer.Start(ctx, "llm.complete", trace.WithAttributes(
		attribute.String("llm.model", c.cfg.Model),
		attribute.Int("llm.prompt_chars", len(prompt)),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reply string
	err := c.breaker.Execute(func() error {
		msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(c.cfg.Model),
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: anthropic.Float(c.cfg.Temperature),
			System:      []anthropic.TextBlockParam{{Text: system}},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return err
		}
		reply = textOf(msg)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	span.SetAttributes(attribute.Int("llm.reply_chars", len(reply)))
	c.log.Debug("Completion received",
		logger.String("model", c.cfg.Model),
		logger.Int("reply_chars", len(reply)),
	)
	return reply, nil
}

func textOf(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
