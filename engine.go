package authcore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/hablas-app/authcore/cookie"
	"github.com/hablas-app/authcore/internal/rate"
	"github.com/hablas-app/authcore/session"
	"github.com/hablas-app/authcore/token"
)

// Engine orchestrates the authentication lifecycle: login, per-request
// authentication, near-expiry refresh, and logout/revocation. It holds
// no per-request state and is safe for concurrent use.
type Engine struct {
	config    Config
	tokens    *token.Codec
	limiter   *rate.Limiter
	blacklist session.Blacklist
	validator CredentialValidator
	cookies   cookie.Codec
	logger    logr.Logger
}

// Cookies returns the cookie codec the engine was built with.
func (e *Engine) Cookies() cookie.Codec { return e.cookies }

// Login runs the full login flow: rate-limit gate, input validation,
// credential check, token issuance. The rate-limit identifier is the
// client IP attached to ctx via [WithClientIP].
//
// Errors: [ErrLoginRateLimited] (as [*RateLimitedError]),
// [ErrValidation], [ErrInvalidCredentials], or a wrapped internal
// failure. Credential-store detail never leaks through.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	identifier := clientIPFromContext(ctx)

	// Reject locked identifiers before touching credentials: uniform
	// timing, no wasted store work.
	status, err := e.limiter.Check(ctx, identifier)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !status.Allowed {
		e.logger.V(1).Info("login rate limited", "identifier", identifier, "retryAfter", status.RetryAfter)
		return LoginResult{}, &RateLimitedError{RetryAfter: status.RetryAfter}
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		if _, err := e.limiter.RecordAttempt(ctx, identifier, false); err != nil {
			return LoginResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return LoginResult{}, ErrValidation
	}

	user, err := e.validator.ValidateCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if _, recordErr := e.limiter.RecordAttempt(ctx, identifier, false); recordErr != nil {
			return LoginResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, recordErr)
		}
		if errors.Is(err, ErrInvalidCredentials) {
			e.logger.V(1).Info("login failed", "identifier", identifier, "userAgent", userAgentFromContext(ctx))
			return LoginResult{}, ErrInvalidCredentials
		}
		e.logger.Error(err, "credential store failure", "identifier", identifier)
		return LoginResult{}, fmt.Errorf("credential validation: %w", err)
	}

	if _, err := e.limiter.RecordAttempt(ctx, identifier, true); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	issued, err := e.tokens.Issue(user.ID, user.Email, user.Role.String(), req.RememberMe)
	if err != nil {
		return LoginResult{}, fmt.Errorf("token issuance: %w", err)
	}

	e.logger.Info("login succeeded", "userId", user.ID, "role", user.Role.String())
	return LoginResult{User: user, Token: issued, RememberMe: req.RememberMe}, nil
}

// Authenticate verifies the token and checks the revocation blacklist.
// It returns [ErrTokenInvalid] for every verification failure,
// [ErrSessionRevoked] for blacklisted tokens, and a wrapped
// [ErrStoreUnavailable] when the blacklist cannot be read. Callers
// must treat all three as a denial.
func (e *Engine) Authenticate(ctx context.Context, tokenString string) (UserSession, error) {
	claims, err := e.tokens.Verify(tokenString)
	if err != nil {
		return UserSession{}, ErrTokenInvalid
	}

	revoked, err := e.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		e.logger.Error(err, "blacklist lookup failed", "tokenId", claims.ID)
		return UserSession{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if revoked {
		return UserSession{}, ErrSessionRevoked
	}

	return userFromClaims(claims)
}

// Refresh reissues the cookie token when it is close to expiry. It
// returns the new token and its lifetime class, [ErrNoRefreshNeeded]
// when the token is still fresh, or [ErrTokenInvalid].
func (e *Engine) Refresh(ctx context.Context, tokenString string) (string, bool, error) {
	// Revoked tokens must not be refreshable into clean ones.
	if _, err := e.Authenticate(ctx, tokenString); err != nil {
		if errors.Is(err, ErrSessionRevoked) || errors.Is(err, ErrStoreUnavailable) {
			return "", false, err
		}
		return "", false, ErrTokenInvalid
	}

	refreshed, rememberMe, err := e.tokens.Refresh(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrNoRefreshNeeded) {
			return "", false, ErrNoRefreshNeeded
		}
		return "", false, ErrTokenInvalid
	}

	return refreshed, rememberMe, nil
}

// Logout revokes the token by blacklisting its ID until the token's own
// expiry. Invalid or absent tokens are a no-op: logout never fails just
// because the session already died.
func (e *Engine) Logout(ctx context.Context, tokenString string) error {
	claims, err := e.tokens.Verify(tokenString)
	if err != nil {
		return nil
	}

	if err := e.blacklist.Add(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.logger.Info("session revoked", "userId", claims.Subject, "tokenId", claims.ID)
	return nil
}

func userFromClaims(claims *token.Claims) (UserSession, error) {
	role, err := ParseRole(claims.Role)
	if err != nil {
		return UserSession{}, ErrTokenInvalid
	}

	name := claims.Email
	if at := strings.IndexByte(claims.Email, '@'); at > 0 {
		name = claims.Email[:at]
	}

	return UserSession{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
		Name:  name,
	}, nil
}
