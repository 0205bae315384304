package bootstrap

import (
	"fmt"

	infraconfig "github.com/jonesrussell/north-cloud/company-research/infrastructure/config"
	infralogger "github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/config"
)

const serviceName = "company-research"

// LoadConfig loads and validates the service configuration.
func LoadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")

	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		return nil, fmt.Errorf("load config: %w", loadErr)
	}

	return cfg, nil
}

// CreateLogger creates a structured logger for the service. stderrOnly
// keeps stdout free for protocols that own it.
func CreateLogger(cfg *config.Config, stderrOnly bool) (infralogger.Logger, error) {
	logCfg := infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	}
	if stderrOnly {
		logCfg.OutputPaths = []string{"stderr"}
	}

	log, logErr := infralogger.New(logCfg)
	if logErr != nil {
		return nil, fmt.Errorf("create logger: %w", logErr)
	}

	return log.With(infralogger.String("service", serviceName)), nil
}
