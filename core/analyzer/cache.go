package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type cacheEntry struct {
	key string
	at  time.Time
}

// resultCache keeps a bounded number of recent results for at most ttl.
// The oldest entry is evicted first.
type resultCache struct {
	mu       sync.Mutex
	items    map[string]cachedResult
	order    []cacheEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

type cachedResult struct {
	result Result
	at     time.Time
}

func newResultCache(capacity int, ttl time.Duration, now func() time.Time) *resultCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &resultCache{
		items:    make(map[string]cachedResult, capacity),
		order:    make([]cacheEntry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      now,
	}
}

func (c *resultCache) get(key string) (Result, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok || now.Sub(item.at) > c.ttl {
		return Result{}, false
	}
	return item.result, true
}

func (c *resultCache) put(key string, result Result) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cachedResult{result: result, at: now}
	c.order = append(c.order, cacheEntry{key: key, at: now})
	c.compact(now)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *resultCache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].at.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		// A re-put key has a newer entry further down the order.
		if item, ok := c.items[oldest.key]; ok && item.at.Equal(oldest.at) {
			delete(c.items, oldest.key)
		}
	}
}

// cacheKey hashes the guideline and the platform list. Each part is
// length-prefixed so different splits of the same bytes never collide.
func cacheKey(guideline string, platforms []string) string {
	h := sha256.New()
	writePart := func(s string) {
		var n [8]byte
		l := uint64(len(s))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(s))
	}
	writePart(guideline)
	for _, p := range platforms {
		writePart(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
