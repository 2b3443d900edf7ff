package session

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist is an in-process [Blacklist] for single-instance
// deployments. Expired entries are dropped lazily on lookup and in bulk
// by PurgeExpired.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryBlacklist creates an empty [MemoryBlacklist].
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: map[string]time.Time{},
		now:     time.Now,
	}
}

// Add implements [Blacklist].
func (b *MemoryBlacklist) Add(_ context.Context, tokenID string, expiresAt time.Time) error {
	if !expiresAt.After(b.now()) {
		return nil
	}

	b.mu.Lock()
	b.entries[tokenID] = expiresAt
	b.mu.Unlock()
	return nil
}

// Contains implements [Blacklist].
func (b *MemoryBlacklist) Contains(_ context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	expiresAt, ok := b.entries[tokenID]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !expiresAt.After(b.now()) {
		b.mu.Lock()
		delete(b.entries, tokenID)
		b.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// PurgeExpired implements [Blacklist].
func (b *MemoryBlacklist) PurgeExpired(context.Context) error {
	now := b.now()

	b.mu.Lock()
	for id, expiresAt := range b.entries {
		if !expiresAt.After(now) {
			delete(b.entries, id)
		}
	}
	b.mu.Unlock()
	return nil
}
