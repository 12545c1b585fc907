// Package ratelimit implements fixed-window admission control per client key.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client must wait when not allowed.
	RetryAfter time.Duration
}

// Store holds one window record per client key. The in-memory implementation
// covers single-instance deployments; a shared key-value store can back it
// for horizontal scaling. Records are process-local and never persisted.
type Store interface {
	// IncrementAndGet bumps the counter for key, starting a fresh window of
	// the given length when none exists or the current one has expired.
	// It returns the post-increment count and the window reset time.
	IncrementAndGet(key string, now time.Time, window time.Duration) (count int, resetAt time.Time)
}

type windowRecord struct {
	count   int
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*windowRecord
}

// NewMemoryStore returns a process-local Store. Entries are replaced when
// their window expires but never evicted, so cardinality follows the number
// of distinct client keys seen by the process.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]*windowRecord)}
}

func (s *memoryStore) IncrementAndGet(key string, now time.Time, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok || now.After(record.resetAt) {
		record = &windowRecord{count: 1, resetAt: now.Add(window)}
		s.records[key] = record
		return record.count, record.resetAt
	}

	record.count++
	return record.count, record.resetAt
}

// Limiter enforces maxRequests per window per key.
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
}

// NewLimiter builds a fixed-window limiter on top of the given store.
func NewLimiter(store Store, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Admit decides whether the request identified by key may proceed. The
// caller supplies now so tests can drive the clock.
func (l *Limiter) Admit(key string, now time.Time) Decision {
	count, resetAt := l.store.IncrementAndGet(key, now, l.window)
	if count > l.maxRequests {
		return Decision{RetryAfter: resetAt.Sub(now)}
	}
	return Decision{Allowed: true}
}
