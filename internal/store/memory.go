package store

import (
	"sync"
	"time"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

// DefaultTTL is how long a fetched station window stays fresh.
const DefaultTTL = time.Hour

type entry struct {
	readings []airquality.Reading
	storedAt time.Time
}

// MemoryCache is a concurrency-safe in-memory reading cache with a fixed TTL.
type MemoryCache struct {
	mu sync.RWMutex

	// key: station|window, value: last fetched readings
	data map[string]*entry

	// retention configuration
	ttl        time.Duration
	maxEntries int // 0 = unlimited

	now func() time.Time
}

// NewMemoryCache creates a new MemoryCache. A ttl <= 0 selects DefaultTTL;
// maxEntries <= 0 means unlimited.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		data:       make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached readings for key and whether they are expired.
// A missing key is reported as expired with no readings.
func (c *MemoryCache) Get(key string) ([]airquality.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		return nil, true
	}
	return e.readings, c.now().Sub(e.storedAt) > c.ttl
}

// Set stores readings under key and enforces retention.
func (c *MemoryCache) Set(key string, readings []airquality.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.data[key] = &entry{readings: readings, storedAt: now}

	// Enforce retention by age.
	for k, e := range c.data {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.data, k)
		}
	}

	// Enforce retention by count, dropping the oldest entries.
	for c.maxEntries > 0 && len(c.data) > c.maxEntries {
		var (
			oldestKey string
			oldest    time.Time
			found     bool
		)
		for k, e := range c.data {
			if k == key {
				continue
			}
			if !found || e.storedAt.Before(oldest) {
				oldestKey, oldest, found = k, e.storedAt, true
			}
		}
		delete(c.data, oldestKey)
	}
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
