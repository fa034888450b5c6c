package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad server mode",
			mutate:  func(c *Config) { c.Server.Mode = "production" },
			wantErr: "server.mode",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name:    "missing database user",
			mutate:  func(c *Config) { c.Database.Username = "" },
			wantErr: "database.username",
		},
		{
			name:    "negative redis db",
			mutate:  func(c *Config) { c.Redis.DB = -1 },
			wantErr: "redis.db",
		},
		{
			name: "enabled pubchem without base url",
			mutate: func(c *Config) {
				c.Lookup.PubChem.Enabled = true
				c.Lookup.PubChem.BaseURL = ""
			},
			wantErr: "lookup.pubchem.base_url",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.Resolver.CacheTTL = -1 },
			wantErr: "resolver.cache_ttl",
		},
		{
			name:    "zero scoring concurrency",
			mutate:  func(c *Config) { c.Scoring.Concurrency = -3 },
			wantErr: "scoring.concurrency",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "text" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "toxiscan", cfg.App.Name)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultPubChemBaseURL, cfg.Lookup.PubChem.BaseURL)
	assert.Equal(t, DefaultCompToxBaseURL, cfg.Lookup.CompTox.BaseURL)
	assert.Equal(t, DefaultResolverCacheTTL, cfg.Resolver.CacheTTL)
	assert.Equal(t, DefaultScoringConcurrency, cfg.Scoring.Concurrency)
	assert.Equal(t, "toxiscan", cfg.Metrics.Namespace)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Database.Host = "db.internal"
	cfg.Scoring.Concurrency = 2
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2, cfg.Scoring.Concurrency)
}

func TestApplyDefaults_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}
