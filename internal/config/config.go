// Package config defines the configuration structures for the toxiscan
// engine.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/postgres"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/redis"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
)

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // "development" | "staging" | "production"
	Version     string `mapstructure:"version"`
}

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PubChemConfig holds PubChem PUG REST client parameters.
type PubChemConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CompToxConfig holds EPA CompTox (CTX) client parameters.  An empty API
// key disables the source.
type CompToxConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LookupConfig groups the external chemical data source settings.
type LookupConfig struct {
	PubChem PubChemConfig `mapstructure:"pubchem"`
	CompTox CompToxConfig `mapstructure:"comptox"`
}

// ResolverConfig holds resolution pipeline tunables.
type ResolverConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ScoringConfig holds product scoring tunables.
type ScoringConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// Config is the root configuration structure for the engine.  Every
// infrastructure component and application service reads its settings from
// the relevant sub-struct.
type Config struct {
	App      AppConfig       `mapstructure:"app"`
	Server   ServerConfig    `mapstructure:"server"`
	Database postgres.Config `mapstructure:"database"`
	Redis    redis.Config    `mapstructure:"redis"`
	Log      logging.Config  `mapstructure:"log"`
	Lookup   LookupConfig    `mapstructure:"lookup"`
	Resolver ResolverConfig  `mapstructure:"resolver"`
	Scoring  ScoringConfig   `mapstructure:"scoring"`
	Metrics  MetricsConfig   `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.Username == "" {
		return fmt.Errorf("config: database.username is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("config: database.database is required")
	}

	if c.Redis.Addr == "" && c.Redis.Mode == "standalone" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	if c.Lookup.PubChem.Enabled && c.Lookup.PubChem.BaseURL == "" {
		return fmt.Errorf("config: lookup.pubchem.base_url is required when the source is enabled")
	}
	if c.Lookup.CompTox.Enabled && c.Lookup.CompTox.BaseURL == "" {
		return fmt.Errorf("config: lookup.comptox.base_url is required when the source is enabled")
	}

	if c.Resolver.CacheTTL < 0 {
		return fmt.Errorf("config: resolver.cache_ttl must not be negative")
	}
	if c.Scoring.Concurrency < 1 {
		return fmt.Errorf("config: scoring.concurrency must be >= 1, got %d", c.Scoring.Concurrency)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
