package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ Backend = (*MemoryBackend)(nil)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryBackend keeps one token bucket per key in process memory.
type MemoryBackend struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rateLimit rate.Limit
	rateBurst int
	idleTTL   time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryBackend(ratePerSec float64, burst int) *MemoryBackend {
	m := &MemoryBackend{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		idleTTL:   10 * time.Minute,
		done:      make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (RateLimitResult, error) {
	now := time.Now()

	m.mu.Lock()
	entry, ok := m.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(m.rateLimit, m.rateBurst)}
		m.limiters[key] = entry
	}
	entry.lastSeen = now
	m.mu.Unlock()

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return RateLimitResult{}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return RateLimitResult{RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.evictIdle(now)
		case <-m.done:
			return
		}
	}
}

func (m *MemoryBackend) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, entry := range m.limiters {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.limiters, key)
		}
	}
}
