package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/company-research/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/metrics"
	"github.com/jonesrussell/north-cloud/company-research/internal/config"
	"github.com/jonesrussell/north-cloud/company-research/internal/telemetry"
)

// Default timeout values. Writes allow for a full fan-out plus a model call.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// NewServer creates the HTTP server. redisPing is nil when the Redis tier
// is disabled.
func NewServer(
	handler *Handler,
	cfg *config.Config,
	log logger.Logger,
	provider *telemetry.Provider,
	redisPing func(ctx context.Context) error,
) *infragin.Server {
	corsConfig := infragin.CORSConfig{
		Enabled:          cfg.CORS.Enabled,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithCORS(corsConfig).
		WithMiddleware(metrics.NewHTTPMetrics(provider.Registry(), telemetry.Namespace).Middleware()).
		WithRoutes(func(router *gin.Engine) {
			router.GET("/metrics", gin.WrapH(provider.Handler()))
			SetupServiceRoutes(router, handler)
		})

	if redisPing != nil {
		builder = builder.WithRedisHealthCheck(redisPing)
	}

	return builder.Build()
}

// SetupServiceRoutes configures service-specific API routes (not health routes).
// Health routes are handled by the infrastructure gin package.
func SetupServiceRoutes(router *gin.Engine, handler *Handler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/company-info", handler.CompanyInfo)
		v1.GET("/salary-benefits", handler.SalaryBenefits)
		v1.GET("/company-reviews", handler.CompanyReviews)
		v1.GET("/interview-prep", handler.InterviewPrep)
		v1.POST("/links/score", handler.ScoreLinks)

		cacheGroup := v1.Group("/cache")
		cacheGroup.GET("/stats", handler.CacheStats)
		cacheGroup.DELETE("", handler.ClearCache)

		autocomplete := v1.Group("/autocomplete")
		autocomplete.GET("/job-title", handler.AutocompleteJobTitle)
		autocomplete.GET("/company", handler.AutocompleteCompany)
	}
}
