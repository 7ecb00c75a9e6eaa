// Package cache provides the time-based result cache for gateway executions.
package cache

import (
	"sync"
	"time"

	"sqlgate/internal/domain"
)

// DefaultTTL is the freshness window after which an entry is treated as absent.
const DefaultTTL = 5 * time.Minute

// Entry is one cached successful execution.
type Entry struct {
	Fingerprint string
	DatabaseID  string
	Rows        []domain.Row
	RowCount    int
	ElapsedMs   int64
	CreatedAt   time.Time
}

type key struct {
	fingerprint string
	databaseID  string
}

// ResultCache maps (fingerprint, databaseID) to a cached result. Two
// different databases never share a hit, even for identical SQL text.
// Only successful executions are stored, so a transient remote failure can
// never poison the cache. Concurrent Put for the same key is last-write-wins.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[key]*Entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a ResultCache with the given freshness window.
// ttl <= 0 uses DefaultTTL.
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		entries: make(map[key]*Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the entry for (fingerprint, databaseID), or false when no entry
// exists or the entry has aged past the freshness window. Expired entries are
// left in place; the next Put for the key overwrites them.
func (c *ResultCache) Get(fingerprint, databaseID string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key{fingerprint, databaseID}]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.CreatedAt) >= c.ttl {
		return nil, false
	}
	return e, true
}

// Put stores a successful execution for (fingerprint, databaseID),
// superseding any previous entry for that key.
func (c *ResultCache) Put(fingerprint, databaseID string, rows []domain.Row, rowCount int, elapsedMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{fingerprint, databaseID}] = &Entry{
		Fingerprint: fingerprint,
		DatabaseID:  databaseID,
		Rows:        rows,
		RowCount:    rowCount,
		ElapsedMs:   elapsedMs,
		CreatedAt:   c.now(),
	}
}

// Sweep removes expired entries and returns how many were dropped. Not
// required for correctness — Get already treats expired entries as absent —
// but keeps memory bounded on long-running servers.
func (c *ResultCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.CreatedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, expired or not.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
