package session

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable wraps backing-store failures on blacklist reads
// and writes.
var ErrStoreUnavailable = errors.New("blacklist store unavailable")

// Blacklist is the revocation registry consulted on every protected
// request. Implementations must be safe for concurrent use and provide
// read-your-writes: once Add returns, Contains sees the entry.
type Blacklist interface {
	// Add revokes the token ID until expiresAt. Adding the same ID twice
	// is a no-op, and IDs whose expiry has already passed need not be
	// stored at all.
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error
	// Contains reports whether the token ID has been revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)
	// PurgeExpired drops entries whose expiry has passed. Purging is an
	// optimization: expired tokens fail verification regardless.
	PurgeExpired(ctx context.Context) error
}
