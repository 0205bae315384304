package bootstrap

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	infracontext "github.com/jonesrussell/north-cloud/company-research/infrastructure/context"
	infralogger "github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/company-research/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/company-research/internal/autocomplete"
	"github.com/jonesrussell/north-cloud/company-research/internal/cache"
	"github.com/jonesrussell/north-cloud/company-research/internal/config"
	"github.com/jonesrussell/north-cloud/company-research/internal/llm"
	"github.com/jonesrussell/north-cloud/company-research/internal/scoring"
	"github.com/jonesrussell/north-cloud/company-research/internal/search"
	"github.com/jonesrussell/north-cloud/company-research/internal/selection"
	"github.com/jonesrussell/north-cloud/company-research/internal/service"
	"github.com/jonesrussell/north-cloud/company-research/internal/telemetry"
	"github.com/jonesrussell/north-cloud/company-research/internal/trust"
)

// Research is the wired research service and the resources behind it.
type Research struct {
	Service   *service.ResearchService
	Telemetry *telemetry.Provider
	// RedisPing is nil when the Redis tier is disabled or unreachable.
	RedisPing func(ctx context.Context) error

	redis *goredis.Client
}

// Close releases the Redis connection, if any.
func (r *Research) Close() error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Close()
}

// SetupResearch builds every collaborator of the research service from
// config. Missing API keys and an unreachable Redis are logged, not fatal.
func SetupResearch(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*Research, error) {
	provider := telemetry.NewProvider()
	r := &Research{Telemetry: provider}

	if cfg.Search.APIKey == "" {
		log.Warn("BRAVE_API_KEY not set; every search will return no results")
	}
	searcher := search.NewClient(search.Config{
		APIKey:      cfg.Search.APIKey,
		BaseURL:     cfg.Search.BaseURL,
		ResultCount: cfg.Search.ResultCount,
		Timeout:     cfg.Search.Timeout,
		RateLimit:   cfg.Search.RateLimit,
		Burst:       cfg.Search.Burst,
		MaxRetries:  cfg.Search.MaxRetries,
	}, log, search.WithObserver(provider))

	completer := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, log)
	if !completer.Configured() {
		log.Warn("ANTHROPIC_API_KEY not set; model-assisted selection will use the fallback selector")
	}

	cacheOpts := []cache.Option{cache.WithObserver(provider)}
	if tier := setupRedisTier(ctx, cfg, log); tier != nil {
		r.redis = tier.client
		r.RedisPing = tier.tier.Ping
		cacheOpts = append(cacheOpts, cache.WithRedisTier(tier.tier))
	}

	index, err := autocomplete.Load()
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("load autocomplete lists: %w", err)
	}

	tables := trust.New(cfg.Trust.ConfidenceOverrides, cfg.Trust.ScoringOverrides)
	selectorOpts := selectorOptions(cfg.Selection)

	r.Service = service.NewResearchService(service.Dependencies{
		Searcher:     searcher,
		Domains:      search.NewDomainIdentifier(searcher, log),
		Selector:     selection.NewModelSelector(completer, log, selection.WithObserver(provider)),
		Cache:        cache.New(log, cacheOpts...),
		Trust:        tables,
		Scorer:       scoring.NewScorer(tables),
		Overview:     selection.NewCategorySelector(selection.OverviewCategories, selectorOpts...),
		Salary:       selection.NewCategorySelector(selection.SalaryCategories, selectorOpts...),
		Autocomplete: index,
		Observer:     provider,
		Tracer:       provider.Tracer,
		Concurrency:  cfg.Search.MaxConcurrency,
		Threshold:    cfg.Scoring.Threshold,
	}, log)

	return r, nil
}

type redisTier struct {
	client *goredis.Client
	tier   *cache.RedisTier
}

func setupRedisTier(ctx context.Context, cfg *config.Config, log infralogger.Logger) *redisTier {
	if !cfg.Redis.Enabled {
		log.Info("Redis tier disabled; caching in memory only")
		return nil
	}

	pingCtx, cancel := infracontext.WithPingTimeout(ctx)
	defer cancel()

	client, err := infraredis.NewClient(pingCtx, infraredis.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable; caching in memory only",
			infralogger.String("address", cfg.Redis.Address),
			infralogger.Error(err),
		)
		return nil
	}

	log.Info("Redis tier connected", infralogger.String("address", cfg.Redis.Address))
	return &redisTier{client: client, tier: cache.NewRedisTier(client, cfg.Cache.KeyPrefix)}
}

// selectorOptions maps the selection block onto category selector options.
// Both category sets share them.
func selectorOptions(sel config.SelectionConfig) []selection.SelectorOption {
	var opts []selection.SelectorOption
	if sel.VideoFirst {
		opts = append(opts, selection.WithVideoFirst())
	}
	if sel.CompanyFilter {
		opts = append(opts, selection.WithCompanyFilter())
	}
	if len(sel.TrustedPass) > 0 {
		opts = append(opts, selection.WithTrustedPass(sel.TrustedPass...))
	}
	return opts
}
