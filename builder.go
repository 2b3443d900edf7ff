package authcore

import (
	"errors"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"

	"github.com/hablas-app/authcore/cookie"
	"github.com/hablas-app/authcore/internal/rate"
	"github.com/hablas-app/authcore/session"
	"github.com/hablas-app/authcore/token"
)

// Builder assembles an [Engine]. With a Redis client the rate limiter
// and blacklist share state across instances; without one they fall
// back to in-process stores suitable for a single instance.
type Builder struct {
	config    Config
	redis     *redis.Client
	validator CredentialValidator
	logger    logr.Logger
	built     bool
}

// New returns a [Builder] preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the configuration. Zero fields still take their
// defaults at build time.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis backs the rate limiter and the blacklist with Redis.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithCredentialValidator wires the external user store. Required.
func (b *Builder) WithCredentialValidator(v CredentialValidator) *Builder {
	b.validator = v
	return b
}

// WithLogger sets the structured logger. Unset loggers resolve to
// [logr.Discard].
func (b *Builder) WithLogger(logger logr.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and assembles the [Engine]. A
// builder can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.validator == nil {
		return nil, errors.New("credential validator required")
	}

	cfg := b.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(token.Config{
		Secret:        cfg.Token.Secret,
		SessionTTL:    cfg.Token.SessionTTL,
		RememberMeTTL: cfg.Token.RememberMeTTL,
		Issuer:        cfg.Token.Issuer,
		Clock:         cfg.Token.Clock,
	})
	if err != nil {
		return nil, err
	}

	var counterStore rate.Store
	var blacklist session.Blacklist
	if b.redis != nil {
		counterStore = rate.NewRedisStore(b.redis)
		blacklist = session.NewRedisBlacklist(b.redis, "")
	} else {
		counterStore = rate.NewMemoryStore()
		blacklist = session.NewMemoryBlacklist()
	}

	b.built = true

	return &Engine{
		config: cfg,
		tokens: codec,
		limiter: rate.New(counterStore, rate.Config{
			MaxAttempts:   cfg.RateLimit.MaxAttempts,
			LockoutWindow: cfg.RateLimit.LockoutWindow,
		}),
		blacklist: blacklist,
		validator: b.validator,
		cookies:   cookie.New(cfg.Cookie.Name, cfg.Cookie.Secure),
		logger:    resolveLogger(b.logger),
	}, nil
}

func resolveLogger(logger logr.Logger) logr.Logger {
	if logger.GetSink() == nil {
		return logr.Discard()
	}
	return logger
}
