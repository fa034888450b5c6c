// Package config provides configuration loading, defaults, and validation
// for the toxiscan engine.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "TOXISCAN"

// knownKeys lists every configuration key the engine reads.  Viper only
// consults environment variables for keys it already knows about, so each
// key is registered with an empty default; real defaults are applied later
// by ApplyDefaults.
var knownKeys = []string{
	"app.name", "app.environment", "app.version",
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
	"server.max_body_size", "server.shutdown_timeout",
	"database.host", "database.port", "database.database", "database.username",
	"database.password", "database.ssl_mode", "database.max_open_conns",
	"database.max_idle_conns", "database.conn_max_lifetime",
	"database.conn_max_idle_time", "database.statement_timeout",
	"redis.mode", "redis.addr", "redis.master_name", "redis.sentinel_addrs",
	"redis.cluster_addrs", "redis.username", "redis.password", "redis.db",
	"redis.pool_size", "redis.min_idle_conns", "redis.max_idle_time",
	"redis.dial_timeout", "redis.read_timeout", "redis.write_timeout",
	"redis.tls_enabled", "redis.tls_cert_file", "redis.tls_key_file",
	"redis.tls_ca_file", "redis.tls_insecure", "redis.max_retries",
	"redis.min_retry_backoff", "redis.max_retry_backoff",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	"lookup.pubchem.enabled", "lookup.pubchem.base_url", "lookup.pubchem.timeout",
	"lookup.comptox.enabled", "lookup.comptox.base_url", "lookup.comptox.api_key",
	"lookup.comptox.timeout",
	"resolver.cache_ttl",
	"scoring.concurrency",
	"metrics.enabled", "metrics.namespace", "metrics.enable_process_metrics",
	"metrics.enable_go_metrics",
}

// newViper builds a pre-configured Viper instance with the engine's standard
// settings: YAML file type, TOXISCAN_ env prefix, automatic env binding, and
// a key replacer that maps "." to "_" so that nested keys like
// "database.host" resolve to "TOXISCAN_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys {
		v.SetDefault(key, nil)
	}
	return v
}

// Load reads the YAML file at configPath, merges any TOXISCAN_* environment
// variable overrides, applies engine defaults for unset fields, and validates
// the result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from TOXISCAN_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for containerised deployments.
//
// Environment variable naming convention:
//
//	TOXISCAN_<SECTION>_<FIELD>   e.g.  TOXISCAN_DATABASE_HOST, TOXISCAN_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as the log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read so the watcher has a baseline; callers should have called
	// Load first, so errors here are ignored.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// A change that produces an invalid config is skipped to keep
			// the application out of a broken state.
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always
// fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
