package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	authcore "github.com/hablas-app/authcore"
)

const (
	reasonSessionExpired = "session-expired"
	reasonSessionRevoked = "session-revoked"
)

type userContextKey struct{}

// UserFromContext returns the authenticated user the gate attached to
// the request context.
func UserFromContext(ctx context.Context) (authcore.UserSession, bool) {
	user, ok := ctx.Value(userContextKey{}).(authcore.UserSession)
	return user, ok
}

// Gate returns middleware enforcing the policy on every request.
//
// Allowed requests reach the next handler with the identity in the
// request context and in the X-User-Id / X-User-Role response headers;
// the raw token is never forwarded. When the token is close to expiry
// the gate reissues it and attaches a Set-Cookie header to the
// otherwise-untouched response.
func Gate(engine *authcore.Engine, policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				deny(w, r, policy, "")
				return
			}

			if policy.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := engine.Cookies().FromRequest(r)
			if !ok {
				deny(w, r, policy, "")
				return
			}

			user, err := engine.Authenticate(r.Context(), tokenString)
			if err != nil {
				// Revoked and unreadable-blacklist states both read as a
				// dead session; everything else as an expired one.
				reason := reasonSessionExpired
				if errors.Is(err, authcore.ErrSessionRevoked) || errors.Is(err, authcore.ErrStoreUnavailable) {
					reason = reasonSessionRevoked
				}
				deny(w, r, policy, reason)
				return
			}

			if minRole, ok := policy.RequiredRole(r.URL.Path); ok && !user.Role.AtLeast(minRole) {
				writeForbidden(w)
				return
			}

			if refreshed, rememberMe, err := engine.Refresh(r.Context(), tokenString); err == nil {
				http.SetCookie(w, engine.Cookies().Encode(refreshed, rememberMe))
			}

			w.Header().Set("X-User-Id", user.ID)
			w.Header().Set("X-User-Role", user.Role.String())

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// deny ends the request for a missing, expired, or revoked session.
// Browser requests are redirected to the login page; API requests get a
// 401 body, never a redirect.
func deny(w http.ResponseWriter, r *http.Request, policy Policy, reason string) {
	if isAPIRequest(r) {
		writeUnauthorized(w)
		return
	}

	query := url.Values{}
	query.Set("redirect", SanitizeRedirect(r.URL.Path))
	if reason != "" {
		query.Set("error", reason)
	}

	loginPath := policy.LoginPath
	if loginPath == "" {
		loginPath = DefaultPolicy().LoginPath
	}

	http.Redirect(w, r, loginPath+"?"+query.Encode(), http.StatusTemporaryRedirect)
}

func isAPIRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"Forbidden"}`))
}
