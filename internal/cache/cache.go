package cache

import (
	"sync"
	"time"

	"github.com/Vamap91/carglass-assistente/internal/models"
)

const (
	// MaxItems bounds the cache size; overflowing inserts evict the
	// oldest 20% of entries by insertion order.
	MaxItems = 1000

	evictFraction = 0.2
)

type entry struct {
	value     models.LookupResult
	expiresAt time.Time
}

// Cache is a TTL key-value store for memoizing client-data lookups.
// Entries expire lazily at read time; Cleanup sweeps eagerly.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	order    []string // keys by insertion order, for overflow eviction
	maxItems int
}

// New creates an empty cache with the default capacity bound.
func New() *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		maxItems: MaxItems,
	}
}

// Get returns the live value for key. Expired entries are removed and
// reported as absent.
func (c *Cache) Get(key string) (models.LookupResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.LookupResult{}, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(key)
		return models.LookupResult{}, false
	}
	return e.value, true
}

// Set stores value under key for ttl. When the cache is full the
// oldest 20% of entries (by insertion order, not LRU) are dropped
// before inserting.
func (c *Cache) Set(key string, value models.LookupResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxItems {
		evict := int(float64(c.maxItems) * evictFraction)
		for _, old := range c.order[:evict] {
			delete(c.entries, old)
		}
		c.order = append([]string(nil), c.order[evict:]...)
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = &entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Cleanup sweeps all expired entries eagerly. Normally expiry is lazy;
// the cleanup job calls this periodically to keep memory flat.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
