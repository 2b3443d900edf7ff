package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalid is returned by [Codec.Verify] and [Codec.Refresh] for every
// failure mode: malformed structure, signature mismatch, unparseable
// payload, or expiry. Callers must not be able to distinguish why a token
// was rejected.
var ErrInvalid = errors.New("invalid token")

// ErrNoRefreshNeeded is returned by [Codec.Refresh] when the token is
// valid but not yet close enough to expiry to warrant reissuance.
var ErrNoRefreshNeeded = errors.New("no refresh needed")

// refreshDivisor fixes the refresh threshold at 1/4 of the token's
// original lifetime.
const refreshDivisor = 4

const minSecretLength = 32

// Claims is the signed payload carried by every session token. The
// registered claims hold subject ID (sub), token ID (jti), and the
// issued-at/expiry pair; email and role ride alongside.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds the signing secret and token lifetimes.
//
// Clock is a test hook; when nil, [time.Now] is used.
type Config struct {
	Secret        []byte
	SessionTTL    time.Duration
	RememberMeTTL time.Duration
	Issuer        string
	Clock         func() time.Time
}

// Codec issues, verifies, and refreshes HMAC-SHA256 session tokens.
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	config Config
	now    func() time.Time
}

// NewCodec validates cfg and returns a ready [Codec].
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if cfg.SessionTTL <= 0 || cfg.RememberMeTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.RememberMeTTL < cfg.SessionTTL {
		return nil, errors.New("remember-me TTL must not be shorter than session TTL")
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Codec{config: cfg, now: now}, nil
}

// Issue builds and signs a fresh token for the subject. Every call mints
// a unique token ID, so two tokens issued in the same instant for the
// same subject never collide.
func (c *Codec) Issue(subjectID, email, role string, rememberMe bool) (string, error) {
	ttl := c.config.SessionTTL
	if rememberMe {
		ttl = c.config.RememberMeTTL
	}

	now := c.now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    c.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Secret)
}

// Verify checks structure, signature, and expiry, and returns the decoded
// claims. Expiry is strict: a token expiring exactly now is invalid.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	if strings.Count(tokenString, ".") != 2 {
		return nil, ErrInvalid
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parsed, err := jwt.NewParser(options...).ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrInvalid
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrInvalid
	}

	return claims, nil
}

// Refresh reissues the token when its remaining lifetime has dropped
// below a quarter of the original lifetime. The new token carries the
// same subject, email, and role, a fresh token ID, and a full expiry
// window of the same lifetime class. Tokens are never extended in place.
//
// Returns [ErrNoRefreshNeeded] when the token is valid but not near
// expiry, and [ErrInvalid] when it fails verification.
func (c *Codec) Refresh(tokenString string) (string, bool, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return "", false, err
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	remaining := claims.ExpiresAt.Sub(c.now())
	if remaining >= lifetime/refreshDivisor {
		return "", false, ErrNoRefreshNeeded
	}

	rememberMe := lifetime > c.config.SessionTTL
	issued, err := c.Issue(claims.Subject, claims.Email, claims.Role, rememberMe)
	if err != nil {
		return "", false, err
	}

	return issued, rememberMe, nil
}
