// Package cache holds the bounded TTL store for fallback-tier suggestion
// sets. The cache is process-wide mutable state shared across request
// goroutines, so every operation runs under one mutex.
package cache

import (
	"sync"
	"time"

	"github.com/soukly/searchd/internal/domain"
)

// Defaults for the fallback cache.
const (
	DefaultMaxEntries = 100
	DefaultTTL        = 5 * time.Minute
)

type entry struct {
	suggestions []domain.Suggestion
	expiresAt   time.Time
}

// Fallback is a bounded, TTL-based suggestion cache. Eviction is by
// insertion order (FIFO): reads do not refresh an entry's position. The
// cache starts empty and is never persisted.
type Fallback struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	entries    map[string]entry
	order      []string
}

// NewFallback creates a fallback cache. Non-positive arguments fall back to
// the package defaults.
func NewFallback(maxEntries int, ttl time.Duration) *Fallback {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Fallback{
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[string]entry),
	}
}

// WithClock overrides the time source. Used by tests to drive expiry.
func (c *Fallback) WithClock(now func() time.Time) *Fallback {
	c.now = now
	return c
}

// Get returns the cached suggestions for key. An expired entry is deleted
// and reported as a miss rather than returned stale.
func (c *Fallback) Get(key string) ([]domain.Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.remove(key)
		return nil, false
	}
	return e.suggestions, true
}

// Set stores suggestions under key. Expired entries are pruned first; if the
// cache is still full, the oldest-inserted entry is evicted. Overwriting an
// existing key keeps its insertion position.
func (c *Fallback) Set(key string, suggestions []domain.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.prune(now)

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{suggestions: suggestions, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of live entries.
func (c *Fallback) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// prune drops every entry whose expiry has passed. Caller holds the lock.
func (c *Fallback) prune(now time.Time) {
	kept := c.order[:0]
	for _, key := range c.order {
		if e, ok := c.entries[key]; ok && now.After(e.expiresAt) {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

// remove drops one entry and its order slot. Caller holds the lock.
func (c *Fallback) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
