package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/fintrack/pkg/cache"
)

// DefaultSweepAt is the number of stored keys that triggers a sweep of
// expired entries on write.
const DefaultSweepAt = 10000

// MemoryCache keeps values and counters in process memory. Expired entries
// are dropped lazily on access, and swept on write once the key count
// reaches the sweep threshold.
type MemoryCache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	counters  map[string]counterEntry
	now       func() time.Time
	sweepAt   int
	nextSweep int
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

type counterEntry struct {
	count     int64
	expiresAt time.Time
}

// Option configures a MemoryCache.
type Option func(*MemoryCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// WithSweepAt sets how many stored keys trigger a sweep. Values below one
// keep the default.
func WithSweepAt(n int) Option {
	return func(c *MemoryCache) {
		if n > 0 {
			c.sweepAt = n
		}
	}
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries:  make(map[string]cacheEntry),
		counters: make(map[string]counterEntry),
		now:      time.Now,
		sweepAt:  DefaultSweepAt,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.nextSweep = c.sweepAt
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}
	c.maybeSweep()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry, ok := c.counters[key]
	if !ok || !now.Before(entry.expiresAt) {
		entry = counterEntry{expiresAt: now.Add(window)}
	}
	entry.count++
	c.counters[key] = entry
	c.maybeSweep()
	return entry.count, nil
}

// Purge removes every expired value and counter.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

// maybeSweep purges once the key count reaches the next threshold. The
// threshold then moves to twice the surviving count, so a cache full of
// live keys is not rescanned on every write.
func (c *MemoryCache) maybeSweep() {
	if len(c.entries)+len(c.counters) < c.nextSweep {
		return
	}
	c.purgeLocked()
	c.nextSweep = max(c.sweepAt, 2*(len(c.entries)+len(c.counters)))
}

func (c *MemoryCache) purgeLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	for key, entry := range c.counters {
		if !now.Before(entry.expiresAt) {
			delete(c.counters, key)
		}
	}
}

// Len returns the number of stored values and counters, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) + len(c.counters)
}

var _ cache.Backend = (*MemoryCache)(nil)
