package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakhi-health/toxiscan/internal/application/resolver"
)

// The cache must satisfy the pipeline's cache contract.
var _ resolver.Cache = (*Cache)(nil)

func TestCache_FullKey(t *testing.T) {
	c := NewCache(nil, nil)
	assert.Equal(t, "toxiscan:chem:entity:abc", c.fullKey("chem:entity:abc"))

	c = NewCache(nil, nil, WithPrefix("test:"))
	assert.Equal(t, "test:k", c.fullKey("k"))
}

func TestCache_JitterTTL(t *testing.T) {
	c := NewCache(nil, nil)

	assert.Equal(t, time.Duration(0), c.jitterTTL(0))

	base := time.Hour
	for i := 0; i < 100; i++ {
		got := c.jitterTTL(base)
		assert.GreaterOrEqual(t, got, time.Duration(float64(base)*0.9))
		assert.LessOrEqual(t, got, time.Duration(float64(base)*1.1))
	}
}

func TestCache_Options(t *testing.T) {
	c := NewCache(nil, nil,
		WithDefaultTTL(time.Minute),
		WithNullCacheTTL(5*time.Second),
	)
	assert.Equal(t, time.Minute, c.defaultTTL)
	assert.Equal(t, 5*time.Second, c.nullCacheTTL)
}
