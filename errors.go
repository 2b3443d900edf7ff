package authcore

import (
	"errors"
	"time"
)

var (
	// ErrValidation is returned when the login request is missing the
	// email or the password.
	ErrValidation = errors.New("email and password are required")
	// ErrInvalidCredentials is the single credential-failure outcome.
	// Unknown user and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginRateLimited marks a login rejected by the attempt budget.
	// The concrete error is a [*RateLimitedError] carrying the retry hint.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrNoToken is returned when a request carries no auth cookie.
	ErrNoToken = errors.New("no authentication token")
	// ErrTokenInvalid is the single outcome for malformed, tampered, and
	// expired tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrSessionRevoked is returned for tokens whose ID is blacklisted.
	ErrSessionRevoked = errors.New("session revoked")
	// ErrNoRefreshNeeded is returned by [Engine.Refresh] when the token
	// is valid and far from expiry.
	ErrNoRefreshNeeded = errors.New("no refresh needed")
	// ErrForbidden is returned when an authenticated user's role is below
	// the required minimum.
	ErrForbidden = errors.New("insufficient role")
	// ErrStoreUnavailable wraps rate-limit and blacklist store failures.
	// Every caller fails closed on it.
	ErrStoreUnavailable = errors.New("auth store unavailable")
)

// RateLimitedError is the concrete error behind [ErrLoginRateLimited].
// RetryAfter is the time left in the identifier's lockout window.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string { return "login rate limited" }

// Is makes errors.Is(err, ErrLoginRateLimited) hold for this type.
func (e *RateLimitedError) Is(target error) bool { return target == ErrLoginRateLimited }
