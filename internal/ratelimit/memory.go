package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold is the table size beyond which Allow opportunistically
// deletes expired records to bound memory. The sweep piggybacks on the
// request path; there is no background goroutine.
const sweepThreshold = 1000

type record struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-local fixed-window Limiter backed by a map.
//
// Each process instance keeps its own table, so under horizontal scale-out
// the limit is approximate, and it resets whenever the process restarts.
// Adequate for a single instance or as an advisory limit; use RedisLimiter
// for a shared counter.
type MemoryLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	records map[string]*record

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryLimiter creates a MemoryLimiter allowing max attempts per key
// per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) > sweepThreshold {
		l.sweepLocked(now)
	}

	rec, ok := l.records[key]
	if !ok || now.After(rec.resetTime) {
		// New key or expired window: open a fresh window.
		l.records[key] = &record{count: 1, resetTime: now.Add(l.window)}
		return Decision{Allowed: true, Remaining: l.max - 1}, nil
	}

	if rec.count >= l.max {
		return Decision{Allowed: false, Remaining: 0}, nil
	}

	rec.count++
	return Decision{Allowed: true, Remaining: l.max - rec.count}, nil
}

// sweepLocked deletes all records whose window has already elapsed.
// Caller must hold l.mu.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for key, rec := range l.records {
		if now.After(rec.resetTime) {
			delete(l.records, key)
		}
	}
}
