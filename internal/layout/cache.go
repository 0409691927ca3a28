package layout

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"
)

// LineCache caches shaped layouts per visual line with LRU eviction. Entries
// are validated against a hash of the rendered text, so a stale entry for an
// edited line is recomputed transparently instead of requiring explicit
// invalidation on every edit.
type LineCache struct {
	mu        sync.RWMutex
	entries   map[int]*cacheEntry
	tabs      *TabExpander
	metrics   Metrics
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	layout     *TextLayout
	textHash   uint64
	lastAccess time.Time
}

// NewLineCache creates a cache that shapes lines with the given tab expander
// and metrics. maxSize is the maximum number of lines kept (0 = unlimited).
func NewLineCache(tabs *TabExpander, metrics Metrics, maxSize int) *LineCache {
	if maxSize < 0 {
		maxSize = 0
	}
	if tabs == nil {
		tabs = NewTabExpander(DefaultTabWidth)
	}
	if metrics.CellWidth <= 0 {
		metrics = DefaultMetrics()
	}
	return &LineCache{
		entries: make(map[int]*cacheEntry),
		tabs:    tabs,
		metrics: metrics,
		maxSize: maxSize,
	}
}

// Get retrieves or shapes the layout for a visual line. text is the line's
// current rendered text and is used to validate the cached entry.
func (c *LineCache) Get(line int, text string) *TextLayout {
	hash := hashText(text)

	c.mu.RLock()
	entry, ok := c.entries[line]
	if ok && entry.textHash == hash {
		c.mu.RUnlock()
		c.mu.Lock()
		// Re-verify under the write lock before touching the entry.
		if e, ok := c.entries[line]; ok && e.textHash == hash {
			e.lastAccess = time.Now()
			layout := e.layout
			c.mu.Unlock()
			c.hits.Add(1)
			return layout
		}
		c.mu.Unlock()
	} else {
		c.mu.RUnlock()
	}

	c.misses.Add(1)

	layout := NewTextLayout(text, c.tabs, c.metrics)
	layout.shape()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[line] = &cacheEntry{
		layout:     layout,
		textHash:   hash,
		lastAccess: time.Now(),
	}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return layout
}

// Invalidate drops the cached layout for one visual line.
func (c *LineCache) Invalidate(line int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, line)
}

// InvalidateFrom drops cached layouts for all lines at or after startLine.
// Useful after an edit that inserts or deletes lines, which shifts every
// following line.
func (c *LineCache) InvalidateFrom(startLine int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for line := range c.entries {
		if line >= startLine {
			delete(c.entries, line)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *LineCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*cacheEntry)
}

// evict removes the least recently used entries until under maxSize.
// Must be called with the write lock held.
func (c *LineCache) evict() {
	if c.maxSize <= 0 || len(c.entries) <= c.maxSize {
		return
	}

	type lineTime struct {
		line int
		time time.Time
	}
	all := make([]lineTime, 0, len(c.entries))
	for line, entry := range c.entries {
		all = append(all, lineTime{line, entry.lastAccess})
	}
	for i := 1; i < len(all); i++ {
		j := i
		for j > 0 && all[j].time.Before(all[j-1].time) {
			all[j], all[j-1] = all[j-1], all[j]
			j--
		}
	}
	toRemove := len(all) - c.maxSize
	for i := 0; i < toRemove; i++ {
		delete(c.entries, all[i].line)
	}
	c.evictions.Add(uint64(toRemove))
}

// Size returns the number of cached entries.
func (c *LineCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *LineCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// hashText computes an FNV-1a hash of the rendered text, with the length
// mixed in to reduce collisions.
func hashText(s string) uint64 {
	h := fnv.New64a()
	length := uint64(len(s))
	h.Write([]byte{
		byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24),
		byte(length >> 32), byte(length >> 40), byte(length >> 48), byte(length >> 56),
	})
	h.Write([]byte(s))
	return h.Sum64()
}
