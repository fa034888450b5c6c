package config

import "time"

const (
	DefaultAppName     = "toxiscan"
	DefaultEnvironment = "development"

	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultDBHost = "localhost"
	DefaultDBPort = 5432
	DefaultDBName = "toxiscan"
	DefaultDBUser = "toxiscan"

	DefaultRedisAddr = "localhost:6379"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultPubChemBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultCompToxBaseURL = "https://api-ccte.epa.gov"
	DefaultLookupTimeout  = 30 * time.Second

	DefaultResolverCacheTTL   = 7 * 24 * time.Hour
	DefaultScoringConcurrency = 8
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.  Fields
// already set by the caller are left unchanged so explicit configuration
// always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = DefaultEnvironment
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 1 << 20
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.Database == "" {
		cfg.Database.Database = DefaultDBName
	}
	if cfg.Database.Username == "" {
		cfg.Database.Username = DefaultDBUser
	}

	if cfg.Redis.Mode == "" {
		cfg.Redis.Mode = "standalone"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Lookup.PubChem.BaseURL == "" {
		cfg.Lookup.PubChem.BaseURL = DefaultPubChemBaseURL
	}
	if cfg.Lookup.PubChem.Timeout == 0 {
		cfg.Lookup.PubChem.Timeout = DefaultLookupTimeout
	}
	if cfg.Lookup.CompTox.BaseURL == "" {
		cfg.Lookup.CompTox.BaseURL = DefaultCompToxBaseURL
	}
	if cfg.Lookup.CompTox.Timeout == 0 {
		cfg.Lookup.CompTox.Timeout = DefaultLookupTimeout
	}

	if cfg.Resolver.CacheTTL == 0 {
		cfg.Resolver.CacheTTL = DefaultResolverCacheTTL
	}
	if cfg.Scoring.Concurrency == 0 {
		cfg.Scoring.Concurrency = DefaultScoringConcurrency
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "toxiscan"
	}
}
