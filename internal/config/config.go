package config

import (
	"fmt"
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/company-research/infrastructure/config"
)

// Config holds all configuration for the company-research service.
type Config struct {
	Service   ServiceConfig             `yaml:"service"`
	Search    SearchConfig              `yaml:"search"`
	LLM       LLMConfig                 `yaml:"llm"`
	Cache     CacheConfig               `yaml:"cache"`
	Redis     infraconfig.RedisConfig   `yaml:"redis"`
	Scoring   ScoringConfig             `yaml:"scoring"`
	Selection SelectionConfig           `yaml:"selection"`
	Trust     TrustConfig               `yaml:"trust"`
	Logging   infraconfig.LoggingConfig `yaml:"logging"`
	CORS      CORSConfig                `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"RESEARCH_PORT"  yaml:"port"`
	Debug   bool   `env:"RESEARCH_DEBUG" yaml:"debug"`
}

// SearchConfig configures the Brave Web Search client and the category fan-out.
type SearchConfig struct {
	APIKey         string        `env:"BRAVE_API_KEY"    yaml:"api_key"`
	BaseURL        string        `env:"BRAVE_BASE_URL"   yaml:"base_url"`
	ResultCount    int           `yaml:"result_count"`
	Timeout        time.Duration `yaml:"timeout"`
	RateLimit      float64       `env:"BRAVE_RATE_LIMIT" yaml:"rate_limit"`
	Burst          int           `yaml:"burst"`
	MaxConcurrency int           `yaml:"max_concurrency"`
	MaxRetries     int           `yaml:"max_retries"`
}

// LLMConfig configures the Anthropic completer used by the model-assisted selector.
type LLMConfig struct {
	APIKey      string        `env:"ANTHROPIC_API_KEY"  yaml:"api_key"`
	Model       string        `env:"ANTHROPIC_MODEL"    yaml:"model"`
	BaseURL     string        `env:"ANTHROPIC_BASE_URL" yaml:"base_url"`
	MaxTokens   int64         `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// CacheConfig configures the request cache.
type CacheConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// ScoringConfig holds the link scorer threshold.
type ScoringConfig struct {
	Threshold int `env:"SCORING_THRESHOLD" yaml:"threshold"`
}

// SelectionConfig tunes the per-category selectors used by the company-info
// and salary-benefits endpoints. Both filters are off by default.
type SelectionConfig struct {
	VideoFirst    bool     `env:"SELECTION_VIDEO_FIRST"    yaml:"video_first"`
	CompanyFilter bool     `env:"SELECTION_COMPANY_FILTER" yaml:"company_filter"`
	TrustedPass   []string `yaml:"trusted_pass"`
}

// TrustConfig carries per-domain overrides for the two trust tables.
type TrustConfig struct {
	ConfidenceOverrides map[string]int `yaml:"confidence_overrides"`
	ScoringOverrides    map[string]int `yaml:"scoring_overrides"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `env:"CORS_ORIGINS" yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

const (
	defaultPort           = 8095
	defaultResultCount    = 5
	defaultSearchTimeout  = 10 * time.Second
	defaultRateLimit      = 10
	defaultBurst          = 10
	defaultMaxConcurrency = 10
	defaultMaxRetries     = 3
	defaultModel          = "claude-3-5-haiku-latest"
	defaultMaxTokens      = 800
	defaultTemperature    = 0.3
	defaultLLMTimeout     = 15 * time.Second
	defaultCacheKeyPrefix = "research:cache:"
	defaultScoreThreshold = 45
	maxScoreThreshold     = 100
)

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// Default returns a config with every default applied. Used when no file is present.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "company-research"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultPort
	}

	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = "https://api.search.brave.com"
	}
	if cfg.Search.ResultCount == 0 {
		cfg.Search.ResultCount = defaultResultCount
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = defaultSearchTimeout
	}
	if cfg.Search.RateLimit == 0 {
		cfg.Search.RateLimit = defaultRateLimit
	}
	if cfg.Search.Burst == 0 {
		cfg.Search.Burst = defaultBurst
	}
	if cfg.Search.MaxConcurrency == 0 {
		cfg.Search.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.Search.MaxRetries == 0 {
		cfg.Search.MaxRetries = defaultMaxRetries
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = defaultMaxTokens
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = defaultTemperature
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = defaultLLMTimeout
	}

	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = defaultCacheKeyPrefix
	}
	if cfg.Scoring.Threshold == 0 {
		cfg.Scoring.Threshold = defaultScoreThreshold
	}

	cfg.Redis.SetDefaults()
	cfg.Logging.SetDefaults()

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
}

// Validate validates the configuration. Missing API keys are not errors: the
// service degrades to empty search results and fallback selection.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Search.BaseURL == "" {
		return &infraconfig.ValidationError{Field: "search.base_url", Message: "is required"}
	}
	if c.Search.ResultCount < 1 {
		return &infraconfig.ValidationError{Field: "search.result_count", Message: "must be greater than 0"}
	}
	if c.Search.MaxConcurrency < 1 {
		return &infraconfig.ValidationError{Field: "search.max_concurrency", Message: "must be greater than 0"}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return &infraconfig.ValidationError{
			Field:   "llm.temperature",
			Message: fmt.Sprintf("must be between 0 and 1, got %v", c.LLM.Temperature),
		}
	}
	if err := infraconfig.ValidateRange("scoring.threshold", c.Scoring.Threshold, 0, maxScoreThreshold); err != nil {
		return err
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return &infraconfig.ValidationError{Field: "redis.address", Message: "is required when redis is enabled"}
	}
	if err := infraconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
