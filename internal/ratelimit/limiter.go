package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter bounds the number of operations per key per fixed time window.
// Time is divided into window-sized buckets; each bucket gets its own
// counter in the store, so a new window starts from zero regardless of
// the previous window's state.
type Limiter struct {
	store CounterStore
	now   func() time.Time
}

// New creates a Limiter on top of the given counter store
func New(store CounterStore) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Allow reports whether the caller identified by key may proceed, given
// at most limit operations per window. Rejected attempts still count
// toward the window. A store failure yields ErrUnavailable; the caller
// decides whether that fails open or closed.
func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	if window <= 0 {
		return false, fmt.Errorf("ratelimit: window must be positive, got %v", window)
	}

	windowID := l.now().UnixNano() / int64(window)
	counterKey := fmt.Sprintf("%s:%d", key, windowID)

	current, err := l.store.Incr(ctx, counterKey, window)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return current <= limit, nil
}
