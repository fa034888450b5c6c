// API server entry point.  Wires the resolution pipeline, hazard knowledge
// base, and scorer behind the HTTP interface.  Redis and Postgres are
// optional: without Redis the engine runs uncached, without Postgres the
// built-in curated tables serve registry and hazard lookups.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakhi-health/toxiscan/internal/application/knowledge"
	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/application/scoring"
	"github.com/sakhi-health/toxiscan/internal/config"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/domain/hazard"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/postgres"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/postgres/repositories"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/redis"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/lookup"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/sakhi-health/toxiscan/internal/interfaces/http"
	"github.com/sakhi-health/toxiscan/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	useRedis := flag.Bool("redis", true, "enable the Redis resolution cache")
	usePostgres := flag.Bool("postgres", false, "serve registry and hazard data from Postgres")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: logger init: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting toxiscan api server",
		logging.String("environment", cfg.App.Environment),
		logging.Int("port", cfg.Server.Port),
	)

	var metrics *prometheus.AppMetrics
	var collector *prometheus.Collector
	if cfg.Metrics.Enabled {
		collector = prometheus.NewCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
		}, logger)
		metrics = prometheus.NewAppMetrics(collector)
	}

	var checkers []handlers.HealthChecker

	// Cache layer.  A Redis outage at startup degrades to uncached
	// operation instead of failing the boot.
	var cache *redis.Cache
	if *useRedis {
		redisClient, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", logging.Err(err))
		} else {
			defer redisClient.Close()
			cache = redis.NewCache(redisClient, logger, redis.WithDefaultTTL(cfg.Resolver.CacheTTL))
			checkers = append(checkers, componentChecker{"redis", cache.Ping})
		}
	}

	// Registry and knowledge base: built-in curated tables, or Postgres
	// when requested.
	registry := chemical.NewBuiltinRegistry()
	kb := hazard.NewBuiltinKnowledgeBase()
	if *usePostgres {
		conn, err := postgres.NewConnection(cfg.Database, logger)
		if err != nil {
			logger.Fatal("postgres connection failed", logging.Err(err))
		}
		defer conn.Close()
		if err := postgres.Migrate(conn.DB()); err != nil {
			logger.Fatal("postgres migration failed", logging.Err(err))
		}
		registry = repositories.NewChemicalRepository(conn.DB())
		kb = repositories.NewHazardRepository(conn.DB())
		checkers = append(checkers, componentChecker{"postgres", conn.HealthCheck})
	}

	// External data sources.
	var sources []resolver.Source
	if cfg.Lookup.PubChem.Enabled {
		sources = append(sources, lookup.NewPubChem(logger,
			lookup.WithPubChemBaseURL(cfg.Lookup.PubChem.BaseURL)))
	}
	if cfg.Lookup.CompTox.Enabled {
		sources = append(sources, lookup.NewCompTox(cfg.Lookup.CompTox.APIKey, logger,
			lookup.WithCompToxBaseURL(cfg.Lookup.CompTox.BaseURL)))
	}

	resolverOpts := []resolver.Option{
		resolver.WithSources(sources...),
		resolver.WithCacheTTL(cfg.Resolver.CacheTTL),
	}
	if cache != nil {
		resolverOpts = append(resolverOpts, resolver.WithCache(cache))
	}
	if metrics != nil {
		resolverOpts = append(resolverOpts, resolver.WithObserver(metrics))
	}
	res := resolver.New(registry, logger, resolverOpts...)

	knowledgeOpts := []knowledge.Option{knowledge.WithCacheTTL(cfg.Resolver.CacheTTL)}
	if cache != nil {
		knowledgeOpts = append(knowledgeOpts, knowledge.WithCache(cache))
	}
	kn := knowledge.NewClient(res, kb, logger, knowledgeOpts...)

	scorerOpts := []scoring.Option{scoring.WithConcurrency(cfg.Scoring.Concurrency)}
	if metrics != nil {
		scorerOpts = append(scorerOpts, scoring.WithObserver(metrics))
	}
	scorer := scoring.NewScorer(kn, logger, scorerOpts...)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ToxicityHandler: handlers.NewToxicityHandler(scorer, logger),
		ChemicalHandler: handlers.NewChemicalHandler(res, kn, logger),
		HealthHandler:   handlers.NewHealthHandler(cfg.App.Version, checkers...),
		Logger:          logger,
		Metrics:         metrics,
		MetricsHandler:  collector,
		Mode:            cfg.Server.Mode,
	})

	srv := httpserver.NewServer(httpserver.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
		}
	}

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("shutdown failed", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadConfig reads the config file when present, otherwise falls back to
// environment variables and defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	fmt.Fprintf(os.Stderr, "warning: config file %s not found, using environment and defaults\n", path)
	return config.LoadFromEnv()
}
