package main

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// config holds the daemon configuration loaded from the environment.
type config struct {
	// HTTPAddr is the listen address (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// JWTSecret signs session tokens; at least 32 bytes.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the iss claim on every token.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// SessionTTL is the default token lifetime (e.g. "24h").
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// RememberMeTTL is the extended token lifetime (e.g. "720h").
	RememberMeTTL string `mapstructure:"REMEMBER_ME_TTL"`
	// LoginMaxAttempts is the failed-login budget per client IP.
	LoginMaxAttempts int `mapstructure:"LOGIN_MAX_ATTEMPTS"`
	// LoginLockoutWindow is the lockout duration (e.g. "15m").
	LoginLockoutWindow string `mapstructure:"LOGIN_LOCKOUT_WINDOW"`
	// CookieName names the session cookie.
	CookieName string `mapstructure:"COOKIE_NAME"`
	// CookieSecure controls the cookie's Secure attribute. Disable only
	// for plain-HTTP local development.
	CookieSecure bool `mapstructure:"COOKIE_SECURE"`
	// RedisAddr enables Redis-backed rate limiting and revocation when
	// set; empty falls back to in-process stores.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	// AdminEmail and AdminPasswordHash define the single built-in
	// account. The hash is bcrypt.
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	// AdminRole is viewer, editor, or admin.
	AdminRole string `mapstructure:"ADMIN_ROLE"`
	// LogVerbosity raises stdr verbosity; 0 logs outcomes only.
	LogVerbosity int `mapstructure:"LOG_VERBOSITY"`
}

// loadConfig reads .env (if present), then builds the config from the
// environment. Env vars override .env.
func loadConfig() (*config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "authcore")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REMEMBER_ME_TTL", "720h")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_LOCKOUT_WINDOW", "15m")
	v.SetDefault("COOKIE_NAME", "auth_token")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("ADMIN_ROLE", "admin")
	v.SetDefault("LOG_VERBOSITY", 0)

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("config: JWT_SECRET must be at least 32 bytes")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set")
	}

	return &cfg, nil
}

func (c *config) sessionTTL() time.Duration {
	return durationOr(c.SessionTTL, 24*time.Hour)
}

func (c *config) rememberMeTTL() time.Duration {
	return durationOr(c.RememberMeTTL, 30*24*time.Hour)
}

func (c *config) lockoutWindow() time.Duration {
	return durationOr(c.LoginLockoutWindow, 15*time.Minute)
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
