package layout

import (
	"sync"
	"time"

	"tableflip.dev/agenda/pkg/item"
)

// Cache memoizes per-day geometry keyed by (day, collection version).
// The store bumps the version on every mutation, so stale entries are
// never served; repeated renders of an unchanged day reuse the same
// boxes.
type Cache struct {
	engine Engine

	mu      sync.Mutex
	entries map[string]cached
}

type cached struct {
	version uint64
	boxes   map[string]Box
}

// NewCache wraps an engine with memoization.
func NewCache(engine Engine) *Cache {
	return &Cache{engine: engine, entries: make(map[string]cached)}
}

const dayKeyLayout = "2006-01-02"

// Day returns the geometry for the given day and version, computing it
// once per (day, version) pair.
func (c *Cache) Day(day time.Time, version uint64, events []*item.Event) map[string]Box {
	key := day.Format(dayKeyLayout)

	c.mu.Lock()
	if hit, ok := c.entries[key]; ok && hit.version == version {
		c.mu.Unlock()
		return hit.boxes
	}
	c.mu.Unlock()

	boxes := c.engine.Day(day, events)

	c.mu.Lock()
	c.entries[key] = cached{version: version, boxes: boxes}
	c.mu.Unlock()
	return boxes
}

// Invalidate drops all memoized days. The store change observer calls
// this on every mutation.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cached)
	c.mu.Unlock()
}

// Engine returns the wrapped engine for direct, uncached computation.
func (c *Cache) Engine() Engine {
	return c.engine
}
