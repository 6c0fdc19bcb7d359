package resultcache

import (
	"sync"
	"time"
)

// Cache memoizes computed API payloads by wall clock. Analytics and
// co-occurrence results are full-corpus recomputations, so the API layer
// caches them for a short TTL instead of recomputing per request.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry
}

type entry struct {
	value    any
	storedAt time.Time
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{ttl: ttl, items: make(map[string]entry)}
}

// Get returns the cached value for key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if now.Sub(e.storedAt) > c.ttl {
		delete(c.items, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, storedAt: time.Now()}
}
