package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Greater(t, cfg.PoolSize, 0)
	assert.Equal(t, 5, cfg.MinIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxIdleTime)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Addr: "redis:6380", PoolSize: 2, ReadTimeout: time.Second}
	applyDefaults(cfg)

	assert.Equal(t, "redis:6380", cfg.Addr)
	assert.Equal(t, 2, cfg.PoolSize)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestBuildTLSConfig(t *testing.T) {
	cfg, err := buildTLSConfig(&Config{})
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = buildTLSConfig(&Config{TLSEnabled: true, TLSInsecure: true})
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.InsecureSkipVerify)

	_, err = buildTLSConfig(&Config{TLSEnabled: true, TLSCertFile: "missing.pem", TLSKeyFile: "missing.key"})
	assert.Error(t, err)
}
