// Package testutil provides shared fakes for unit tests.
package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryCache is a thread-safe in-memory cache that serializes values
// through JSON, mirroring the production cache's round-trip semantics.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte

	// Sets counts successful writes, Hits and Misses count reads.
	Sets   int
	Hits   int
	Misses int
}

// NewMemoryCache builds an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}}
}

// Get unmarshals the stored value into dest and reports whether the key
// was present.
func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.data[key]
	if !ok {
		c.Misses++
		return false, nil
	}
	c.Hits++
	return true, json.Unmarshal(raw, dest)
}

// Set stores value under key.  The TTL is ignored; entries live until
// Delete or the end of the test.
func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.Sets++
	return nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
