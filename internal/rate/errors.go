package rate

import "errors"

var (
	// ErrRateLimited is returned when an identifier has exhausted its
	// attempt budget for the current window.
	ErrRateLimited = errors.New("rate limited")
	// ErrStoreUnavailable wraps backing-store failures. Callers treat it
	// as a deny: an unreadable counter is never an open gate.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
