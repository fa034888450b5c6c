// Package http assembles the gin route tree and the HTTP server shell
// around the scoring engine.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/prometheus"
	"github.com/sakhi-health/toxiscan/internal/interfaces/http/handlers"
	"github.com/sakhi-health/toxiscan/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the complete route tree.  Nil handlers leave their routes
// unregistered so partial assemblies work in tests.
type RouterConfig struct {
	ToxicityHandler *handlers.ToxicityHandler
	ChemicalHandler *handlers.ChemicalHandler
	HealthHandler   *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler *prometheus.Collector

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string

	CORS    *middleware.CORSConfig
	Logging *middleware.LoggingConfig
}

// NewRouter constructs the complete route tree: global middleware, public
// health and metrics endpoints, and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	logCfg := middleware.DefaultLoggingConfig()
	if cfg.Logging != nil {
		logCfg = *cfg.Logging
	}
	r.Use(middleware.RequestLogging(cfg.Logger, logCfg))

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.CORS != nil {
		corsCfg = *cfg.CORS
	}
	r.Use(middleware.CORS(corsCfg))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.ToxicityHandler != nil {
			api.POST("/toxicity/score", cfg.ToxicityHandler.Score)
		}
		if cfg.ChemicalHandler != nil {
			api.POST("/chemicals/resolve", cfg.ChemicalHandler.Resolve)
			api.GET("/chemicals/:cas/hazard", cfg.ChemicalHandler.Hazard)
		}
	}

	return r
}
