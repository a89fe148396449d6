package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process counter store for single-instance
// deployments and tests. Counters whose windows have passed are pruned
// lazily on access and in bulk via Cleanup.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory counter store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Incr increments the counter for key, creating it with the given ttl on
// first increment. Expired entries count as absent.
func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || now.After(ent.expiresAt) {
		ent = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = ent
	}
	ent.count++
	return ent.count, nil
}

// Cleanup drops every expired counter. Call it periodically from a
// janitor goroutine; Incr stays correct without it.
func (s *MemoryStore) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ent := range s.entries {
		if now.After(ent.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// StartJanitor prunes expired counters every interval until the context
// is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// Ensure MemoryStore implements CounterStore
var _ CounterStore = (*MemoryStore)(nil)
