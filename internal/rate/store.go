package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the atomic counter backend behind [Limiter]. Implementations
// must be safe for concurrent use; Increment must be atomic so racing
// requests from one identifier cannot lose counts.
type Store interface {
	// Increment adds one to the counter, starting the window (ttl) when
	// the counter is created, and returns the new count.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Count returns the current count and the time left in the window.
	// Missing keys return zero with no error.
	Count(ctx context.Context, key string) (int64, time.Duration, error)
	// Delete removes the counter.
	Delete(ctx context.Context, key string) error
}

type redisStore struct {
	client redis.UniversalClient
}

// NewRedisStore returns a [Store] backed by Redis counters, for
// deployments where several instances must share lockout state.
func NewRedisStore(client redis.UniversalClient) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return count, nil
}

func (s *redisStore) Count(ctx context.Context, key string) (int64, time.Duration, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if ttl < 0 {
		ttl = 0
	}

	return count, ttl, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an in-process [Store] for single-instance
// deployments. Expired windows are dropped lazily on access.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (s *memoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || !entry.resetAt.After(now) {
		entry = memoryEntry{resetAt: now.Add(ttl)}
	}
	entry.count++
	s.entries[key] = entry

	return entry.count, nil
}

func (s *memoryStore) Count(_ context.Context, key string) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok {
		return 0, 0, nil
	}
	if !entry.resetAt.After(now) {
		delete(s.entries, key)
		return 0, 0, nil
	}

	return entry.count, entry.resetAt.Sub(now), nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
