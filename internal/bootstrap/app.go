// Package bootstrap handles application initialization and lifecycle management
// for the company-research service and its MCP server.
package bootstrap

import (
	"context"
	"fmt"

	infralogger "github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/company-research/internal/api"
	"github.com/jonesrussell/north-cloud/company-research/internal/mcpserver"
)

// Start initializes and runs the HTTP service until shutdown.
func Start(ctx context.Context) error {
	cfg, configErr := LoadConfig()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg, false)
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	profiling.StartPprofServer(log)
	if pyro, pyroErr := profiling.StartPyroscope(serviceName, log); pyroErr != nil {
		log.Warn("Pyroscope failed to start", infralogger.Error(pyroErr))
	} else if pyro != nil {
		defer pyro.Stop() //nolint:errcheck // best-effort cleanup
	}

	log.Info("Starting company research service",
		infralogger.String("name", cfg.Service.Name),
		infralogger.String("version", cfg.Service.Version),
		infralogger.Int("port", cfg.Service.Port),
		infralogger.Bool("debug", cfg.Service.Debug),
	)

	research, setupErr := SetupResearch(ctx, cfg, log)
	if setupErr != nil {
		return fmt.Errorf("setup: %w", setupErr)
	}
	defer closeResearch(research, log)

	handler := api.NewHandler(research.Service, log)
	server := api.NewServer(handler, cfg, log, research.Telemetry, research.RedisPing)

	if runErr := server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server: %w", runErr)
	}

	log.Info("Company research service stopped")
	return nil
}

// StartMCP serves the research tools over stdio. Logs go to stderr because
// stdout carries the protocol.
func StartMCP(ctx context.Context) error {
	cfg, configErr := LoadConfig()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg, true)
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	research, setupErr := SetupResearch(ctx, cfg, log)
	if setupErr != nil {
		return fmt.Errorf("setup: %w", setupErr)
	}
	defer closeResearch(research, log)

	log.Info("Starting company research MCP server", infralogger.String("version", cfg.Service.Version))

	s := mcpserver.New(research.Service, cfg.Service.Version, log)
	if serveErr := mcpserver.ServeStdio(s); serveErr != nil {
		return fmt.Errorf("mcp server: %w", serveErr)
	}
	return nil
}

func closeResearch(r *Research, log infralogger.Logger) {
	if err := r.Close(); err != nil {
		log.Error("Failed to close Redis client", infralogger.Error(err))
	}
}
