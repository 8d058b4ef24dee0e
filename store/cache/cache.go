// Package cache provides the in-process entity cache backing the store
// facade. Entries carry an explicit pending/confirmed state so optimistic
// registrations can be promoted or rolled back without relying on timing.
package cache

import (
	"sync"
	"time"
)

// State tags a cache entry's lifecycle.
type State int

const (
	// StatePending marks an optimistically registered entity whose write has
	// not been acknowledged by the store yet. Pending entries are invisible
	// to readers.
	StatePending State = iota
	// StateConfirmed marks an entry backed by an acknowledged store row.
	StateConfirmed
)

// Config holds cache settings.
type Config struct {
	// DefaultTTL is how long entries stay valid. Zero disables expiry.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept. Zero disables
	// the background sweeper; expired entries are then dropped lazily on read.
	CleanupInterval time.Duration
	// MaxItems caps the cache size. Zero means unbounded.
	MaxItems int
	// OnEviction, if set, is called outside the lock for every removed entry.
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	state     State
	expiresAt time.Time // zero means no expiry
}

// Cache is a TTL'd, size-capped in-memory map. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	config Config
	items  map[string]*item

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a cache and, when CleanupInterval is set, starts its sweeper.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		items:  make(map[string]*item),
		done:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.sweep()
	}
	return c
}

// Get returns the confirmed value for key. Pending and expired entries miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || it.state != StateConfirmed {
		return nil, false
	}
	if !it.expiresAt.IsZero() && time.Now().After(it.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return it.value, true
}

// Set stores a confirmed value under key.
func (c *Cache) Set(key string, value any) {
	c.put(key, value, StateConfirmed)
}

// SetPending optimistically registers a value whose write is still in flight.
func (c *Cache) SetPending(key string, value any) {
	c.put(key, value, StatePending)
}

// Confirm promotes the entry under key to confirmed, replacing its value
// with the store-acknowledged one. A missing entry is simply set.
func (c *Cache) Confirm(key string, value any) {
	c.put(key, value, StateConfirmed)
}

// Delete removes the entry under key, whatever its state.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	it, ok := c.items[key]
	if ok {
		delete(c.items, key)
	}
	c.mu.Unlock()

	if ok && c.config.OnEviction != nil {
		c.config.OnEviction(key, it.value)
	}
}

// Len reports the number of entries, pending included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the background sweeper.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Cache) put(key string, value any, state State) {
	var expiresAt time.Time
	if c.config.DefaultTTL > 0 {
		expiresAt = time.Now().Add(c.config.DefaultTTL)
	}

	c.mu.Lock()
	if _, exists := c.items[key]; !exists && c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		c.evictOldestLocked()
	}
	c.items[key] = &item{value: value, state: state, expiresAt: expiresAt}
	c.mu.Unlock()
}

// evictOldestLocked drops the entry closest to expiry. Caller holds the lock.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, it := range c.items {
		if first || it.expiresAt.Before(oldest) {
			oldestKey, oldest = key, it.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.items, oldestKey)
	}
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, it := range c.items {
				if !it.expiresAt.IsZero() && now.After(it.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
