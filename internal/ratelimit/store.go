package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the backing counter store cannot be
// reached. Whether that fails a request open or closed is the caller's
// policy, not the limiter's.
var ErrUnavailable = errors.New("rate limit store unavailable")

// CounterStore provides the atomic increment-with-expiry primitive the
// limiter runs on. Implementations must guarantee a linearizable
// increment; the expiry is set exactly once, on the first increment of a
// key's lifetime.
//
// This allows for both distributed (Redis) and in-memory (single
// instance, tests) implementations.
type CounterStore interface {
	// Incr atomically increments the counter for key and returns the
	// post-increment value. When the returned value is 1, the key's
	// expiry has been set to ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
