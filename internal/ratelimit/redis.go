package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a distributed counter store backed by Redis. INCR is
// atomic on the server, so concurrent callers observe a linearizable
// increment regardless of which process they run in.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed counter store
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Incr increments the counter and, on the first increment of the key,
// sets its expiry so stale windows are reclaimed automatically. The
// INCR/EXPIRE pair can race across processes on a brand-new key; both
// racers set the same ttl, so the outcome is identical. Callers that use
// the same key with different ttls get undefined expiry — key discipline
// is theirs.
func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	current, err := s.client.Incr(ctx, s.prefix+key).Result()
	if err != nil {
		return 0, err
	}
	if current == 1 {
		// Whole seconds, rounded up: EXPIRE has second granularity
		secs := (ttl + time.Second - 1) / time.Second
		if secs < 1 {
			secs = 1
		}
		if err := s.client.Expire(ctx, s.prefix+key, secs*time.Second).Err(); err != nil {
			return 0, err
		}
	}
	return current, nil
}

// Ensure RedisStore implements CounterStore
var _ CounterStore = (*RedisStore)(nil)
