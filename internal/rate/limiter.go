package rate

import (
	"context"
	"time"
)

const loginKeyPrefix = "rl:login:"

// Config holds rate limiter tuning parameters.
type Config struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

// Status reports the limiter's view of one identifier after a check or a
// recorded attempt.
type Status struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts consecutive failed login attempts per identifier over a
// fixed window and locks the identifier out once the budget is spent.
// Identifiers are tracked independently of one another.
type Limiter struct {
	store  Store
	config Config
}

// New creates a [Limiter] on top of the given counter store.
func New(store Store, cfg Config) *Limiter {
	return &Limiter{store: store, config: cfg}
}

// Check reports whether the identifier may attempt a login. It reads the
// counter without mutating it, so it can run before credentials are even
// looked at.
func (l *Limiter) Check(ctx context.Context, identifier string) (Status, error) {
	count, ttl, err := l.store.Count(ctx, loginKey(identifier))
	if err != nil {
		return Status{}, err
	}
	return l.status(count, ttl), nil
}

// RecordAttempt records the outcome of a login attempt. Success resets
// the identifier's counter to zero immediately; failure increments it
// and starts the lockout window on the first failure.
func (l *Limiter) RecordAttempt(ctx context.Context, identifier string, success bool) (Status, error) {
	key := loginKey(identifier)

	if success {
		if err := l.store.Delete(ctx, key); err != nil {
			return Status{}, err
		}
		return Status{Allowed: true, Remaining: l.config.MaxAttempts}, nil
	}

	count, err := l.store.Increment(ctx, key, l.config.LockoutWindow)
	if err != nil {
		return Status{}, err
	}

	_, ttl, err := l.store.Count(ctx, key)
	if err != nil {
		return Status{}, err
	}

	return l.status(count, ttl), nil
}

func (l *Limiter) status(count int64, ttl time.Duration) Status {
	remaining := l.config.MaxAttempts - int(count)
	if remaining < 0 {
		remaining = 0
	}

	if count >= int64(l.config.MaxAttempts) {
		retryAfter := ttl
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Status{Allowed: false, Remaining: remaining, RetryAfter: retryAfter}
	}

	return Status{Allowed: true, Remaining: remaining}
}

func loginKey(identifier string) string {
	return loginKeyPrefix + identifier
}
