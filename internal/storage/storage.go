package storage

import "sync"

// PropertyCache holds resolved configuration properties for the lifetime of
// the process. Entries are never evicted or refreshed.
type PropertyCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache keeps properties in-memory and guards access with a RWMutex.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		values: make(map[string]string),
	}
}

// Get returns the cached value for key, if any.
func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.values[key]
	return value, ok
}

// Set stores value under key. The last writer for a key wins.
func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}

// Len reports how many properties are cached.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
