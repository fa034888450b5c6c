//go:build integration

// Package integration holds tests that require Docker; they are gated
// behind the "integration" build tag.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/database/redis"
)

// startRedis launches a Redis 7 container and returns a connected client.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := redis.NewClient(&redis.Config{Addr: host + ":" + port.Port()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCache_RoundTrip(t *testing.T) {
	client := startRedis(t)
	cache := redis.NewCache(client, nil)
	ctx := context.Background()

	type payload struct {
		CAS        string  `json:"cas"`
		Confidence float64 `json:"confidence"`
	}

	require.NoError(t, cache.Set(ctx, "roundtrip", payload{CAS: "80-05-7", Confidence: 0.9}, time.Minute))

	var got payload
	found, err := cache.Get(ctx, "roundtrip", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "80-05-7", got.CAS)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)

	found, err = cache.Get(ctx, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_GetOrSetSingleLoad(t *testing.T) {
	client := startRedis(t)
	cache := redis.NewCache(client, nil)
	ctx := context.Background()

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return map[string]string{"cas": "99-76-3"}, nil
	}

	var first map[string]string
	fromCache, err := cache.GetOrSet(ctx, "loader-key", &first, time.Minute, loader)
	require.NoError(t, err)
	assert.False(t, fromCache)

	var second map[string]string
	fromCache, err = cache.GetOrSet(ctx, "loader-key", &second, time.Minute, loader)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	client := startRedis(t)
	cache := redis.NewCache(client, nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "chem:entity:aaa", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "chem:entity:bbb", "2", time.Minute))
	require.NoError(t, cache.Set(ctx, "chem:info:ccc", "3", time.Minute))

	deleted, err := cache.DeleteByPrefix(ctx, "chem:entity:")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var v string
	found, err := cache.Get(ctx, "chem:entity:aaa", &v)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = cache.Get(ctx, "chem:info:ccc", &v)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestResolver_RedisBackedShortCircuit(t *testing.T) {
	client := startRedis(t)
	cache := redis.NewCache(client, nil)
	ctx := context.Background()

	res := resolver.New(chemical.NewBuiltinRegistry(), nil, resolver.WithCache(cache))

	first, err := res.Resolve(ctx, "Methyl Paraben")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "curated_registry", first.Source)
	assert.Equal(t, "99-76-3", first.Identity.CASNumber)

	// Second call is served from the cache with full confidence.
	second, err := res.Resolve(ctx, "Methyl Paraben")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, resolver.ConfidenceCache, second.Confidence)
	assert.Equal(t, "99-76-3", second.Identity.CASNumber)
}
