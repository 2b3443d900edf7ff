package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "bl:"

// RedisBlacklist stores revoked token IDs as Redis keys whose TTL equals
// the token's remaining lifetime, so Redis itself garbage-collects
// entries the moment they stop mattering.
type RedisBlacklist struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisBlacklist creates a [RedisBlacklist] under the given key
// prefix; an empty prefix selects "bl:".
func NewRedisBlacklist(client redis.UniversalClient, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisBlacklist{client: client, prefix: prefix, now: time.Now}
}

func (b *RedisBlacklist) key(tokenID string) string {
	return b.prefix + tokenID
}

// Add implements [Blacklist].
func (b *RedisBlacklist) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}

	if err := b.client.Set(ctx, b.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Contains implements [Blacklist].
func (b *RedisBlacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// PurgeExpired implements [Blacklist]. Key TTLs already handle expiry,
// so there is nothing to sweep.
func (b *RedisBlacklist) PurgeExpired(context.Context) error {
	return nil
}
