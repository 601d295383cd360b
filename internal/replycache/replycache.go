// Package replycache memoizes resolved answers per normalized query for a
// bounded time, so identical rapid-fire questions never re-enter the
// matching or refresh path.
package replycache

import (
	"sync"
	"time"
)

// sweepThreshold is the entry count past which Put triggers a full sweep of
// expired entries. Expired entries are otherwise removed lazily on Get.
const sweepThreshold = 1024

type entry struct {
	response  string
	createdAt time.Time
}

// Cache is an in-memory TTL cache keyed by the normalized query string.
// It holds nothing across restarts.
type Cache struct {
	ttl time.Duration
	now func() time.Time // test hook

	mu      sync.Mutex
	entries map[string]entry
}

// New creates an empty cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached response for query. An entry older than the TTL is
// deleted and reported as a miss.
func (c *Cache) Get(query string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[query]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, query)
		return "", false
	}
	return e.response, true
}

// Put stores the final resolved response for query, resetting its TTL.
func (c *Cache) Put(query, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[query] = entry{response: response, createdAt: c.now()}
	if len(c.entries) > sweepThreshold {
		c.evictExpiredLocked()
	}
}

// EvictExpired removes every expired entry and reports how many it removed.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictExpiredLocked()
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictExpiredLocked() int {
	now := c.now()
	evicted := 0
	for q, e := range c.entries {
		if now.Sub(e.createdAt) > c.ttl {
			delete(c.entries, q)
			evicted++
		}
	}
	return evicted
}
