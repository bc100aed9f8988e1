package embedding

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCacheTTL is how long a cached embedding stays valid. Embeddings are
// deterministic per model version, so the TTL exists to pick up provider
// model updates rather than content drift.
const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	vector    []float32
	createdAt time.Time
}

// Cache maps a content hash to an embedding vector with TTL expiry. It is
// safe for concurrent use; entries are immutable once written within a TTL
// window, so concurrent writes for the same hash are last-writer-wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64

	// now is swappable for TTL tests
	now func() time.Time
}

// NewCache creates a cache with the given TTL. A non-positive ttl falls back
// to DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the vector stored under contentHash if present and fresh.
// Expired entries are removed on access.
func (c *Cache) Get(contentHash string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[contentHash]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, contentHash)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	// Copy so callers can't mutate the cached entry.
	vector := make([]float32, len(entry.vector))
	copy(vector, entry.vector)
	return vector, true
}

// Put stores a vector under contentHash, replacing any existing entry.
func (c *Cache) Put(contentHash string, vector []float32) {
	stored := make([]float32, len(vector))
	copy(stored, vector)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[contentHash] = cacheEntry{vector: stored, createdAt: c.now()}
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns current hit/miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
