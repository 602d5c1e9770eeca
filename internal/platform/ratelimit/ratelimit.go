// Package ratelimit implements fixed-window request limits keyed by caller.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func decide(limit int, count int64, ttl time.Duration) Decision {
	d := Decision{Allowed: count <= int64(limit)}
	if rem := int64(limit) - count; rem > 0 {
		d.Remaining = int(rem)
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d
}

type window struct {
	count   int64
	resetAt time.Time
}

// Memory is a single-process limiter, used when no Redis is configured.
type Memory struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	now     func() time.Time
	windows map[string]*window
}

func NewMemory(limit int, period time.Duration) *Memory {
	return &Memory{limit: limit, period: period, now: time.Now, windows: map[string]*window{}}
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.period)}
		m.windows[key] = w
		m.sweep(now)
	}
	w.count++
	return decide(m.limit, w.count, w.resetAt.Sub(now)), nil
}

// sweep drops expired windows so idle keys do not accumulate.
func (m *Memory) sweep(now time.Time) {
	if len(m.windows) < 1024 {
		return
	}
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}
