package authcore

import (
	"errors"
	"time"

	"github.com/hablas-app/authcore/cookie"
)

// Config is the engine configuration tree. Zero fields take the
// defaults from [DefaultConfig]; [Config.Validate] runs at build time.
type Config struct {
	Token     TokenConfig
	RateLimit RateLimitConfig
	Cookie    CookieConfig
}

// TokenConfig holds the signing secret and the two token lifetime
// classes. The lifetimes and the attempt budget are policy knobs, not
// security guarantees; the defaults mirror the admin surface's observed
// behavior.
type TokenConfig struct {
	Secret        []byte
	SessionTTL    time.Duration
	RememberMeTTL time.Duration
	Issuer        string
	// Clock overrides the time source for tests.
	Clock func() time.Time
}

// RateLimitConfig bounds consecutive failed logins per client IP.
type RateLimitConfig struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

// CookieConfig names the auth cookie and controls its Secure attribute.
type CookieConfig struct {
	Name   string
	Secure bool
}

// DefaultConfig returns the observed defaults: 24h session tokens, 30d
// remember-me tokens, 5 failed attempts per 15-minute window, and a
// secure "auth_token" cookie.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			SessionTTL:    24 * time.Hour,
			RememberMeTTL: 30 * 24 * time.Hour,
			Issuer:        "authcore",
		},
		RateLimit: RateLimitConfig{
			MaxAttempts:   5,
			LockoutWindow: 15 * time.Minute,
		},
		Cookie: CookieConfig{
			Name:   cookie.DefaultName,
			Secure: true,
		},
	}
}

// Validate rejects configurations the engine cannot run safely with.
func (c Config) Validate() error {
	if len(c.Token.Secret) < 32 {
		return errors.New("token secret must be at least 32 bytes")
	}
	if c.Token.SessionTTL <= 0 || c.Token.RememberMeTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.Token.RememberMeTTL < c.Token.SessionTTL {
		return errors.New("remember-me TTL must not be shorter than session TTL")
	}
	if c.RateLimit.MaxAttempts <= 0 {
		return errors.New("rate limit max attempts must be positive")
	}
	if c.RateLimit.LockoutWindow <= 0 {
		return errors.New("rate limit lockout window must be positive")
	}
	return nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.Token.SessionTTL == 0 {
		c.Token.SessionTTL = def.Token.SessionTTL
	}
	if c.Token.RememberMeTTL == 0 {
		c.Token.RememberMeTTL = def.Token.RememberMeTTL
	}
	if c.Token.Issuer == "" {
		c.Token.Issuer = def.Token.Issuer
	}
	if c.RateLimit.MaxAttempts == 0 {
		c.RateLimit.MaxAttempts = def.RateLimit.MaxAttempts
	}
	if c.RateLimit.LockoutWindow == 0 {
		c.RateLimit.LockoutWindow = def.RateLimit.LockoutWindow
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = def.Cookie.Name
	}

	return c
}
