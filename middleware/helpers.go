package middleware

import (
	"net/http"

	authcore "github.com/hablas-app/authcore"
)

// CheckAuth authenticates the request's cookie token. It never panics
// or throws; an unauthenticated result carries the reason in Err and a
// zero-value user that must not be trusted.
func CheckAuth(engine *authcore.Engine, r *http.Request) authcore.AuthResult {
	tokenString, ok := engine.Cookies().FromRequest(r)
	if !ok {
		return authcore.AuthResult{Err: authcore.ErrNoToken}
	}

	user, err := engine.Authenticate(r.Context(), tokenString)
	if err != nil {
		return authcore.AuthResult{Err: err}
	}

	return authcore.AuthResult{Authenticated: true, User: user, Role: user.Role}
}

// RequireAuth returns the authenticated user or a non-nil error.
// Failure is always an error, never an empty user.
func RequireAuth(engine *authcore.Engine, r *http.Request) (authcore.UserSession, error) {
	result := CheckAuth(engine, r)
	if !result.Authenticated {
		return authcore.UserSession{}, result.Err
	}
	return result.User, nil
}

// RequireRole returns the authenticated user when their role is at
// least minRole, and [authcore.ErrForbidden] otherwise.
func RequireRole(engine *authcore.Engine, r *http.Request, minRole authcore.Role) (authcore.UserSession, error) {
	user, err := RequireAuth(engine, r)
	if err != nil {
		return authcore.UserSession{}, err
	}
	if !user.Role.AtLeast(minRole) {
		return authcore.UserSession{}, authcore.ErrForbidden
	}
	return user, nil
}
