package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryGate is a process-local [Gate]. Counters for past days are discarded
// when the first request of a new day arrives.
type MemoryGate struct {
	mu     sync.Mutex
	limit  int
	day    string
	counts map[string]int
}

// NewMemoryGate returns a gate allowing limit requests per user per day.
// A limit of zero or less allows everything.
func NewMemoryGate(limit int) *MemoryGate {
	return &MemoryGate{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// Consume implements [Gate].
func (g *MemoryGate) Consume(_ context.Context, user string, now time.Time) (bool, error) {
	if g.limit <= 0 {
		return true, nil
	}

	day := Day(now)
	key := userKey(user)

	g.mu.Lock()
	defer g.mu.Unlock()

	if day != g.day {
		g.day = day
		clear(g.counts)
	}
	if g.counts[key] >= g.limit {
		return false, nil
	}
	g.counts[key]++
	return true, nil
}

// Used returns how many requests user has consumed on the day of now.
func (g *MemoryGate) Used(user string, now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if Day(now) != g.day {
		return 0
	}
	return g.counts[userKey(user)]
}
