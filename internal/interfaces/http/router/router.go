package router

import (
	"github.com/gin-gonic/gin"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"github.com/supplychain/backend/internal/infrastructure/logger"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds everything needed to assemble the HTTP router
type Config struct {
	JWTService *auth.JWTService
	HTTP       config.HTTPConfig
	Telemetry  config.TelemetryConfig
	Logger     *zap.Logger

	// Public registrars are mounted without authentication
	Public []RouteRegistrar
	// Protected registrars are mounted behind JWT authentication
	Protected []RouteRegistrar
}

// New assembles the gin engine with middleware and all routes mounted
// under /api/v1.
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanEnrichment(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORS(cfg.HTTP),
	)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		// Errors here only occur for malformed CIDRs in config,
		// which config validation already rejects.
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	api := engine.Group("/api/v1")
	for _, registrar := range cfg.Public {
		registrar.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(cfg.JWTService))
	for _, registrar := range cfg.Protected {
		registrar.RegisterRoutes(protected)
	}

	return engine
}
