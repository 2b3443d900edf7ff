// Package authcore is the authentication and session-lifecycle engine
// for the Hablas admin surface: signed session tokens, per-IP login
// rate limiting, token revocation, and the request gate that enforces
// them on every protected route.
//
// # Layout
//
//   - root: [Builder], [Engine], config, roles, sentinel errors
//   - token: HMAC session token issue/verify/refresh
//   - session: revocation blacklist (Redis or in-process)
//   - cookie: auth cookie encode/decode
//   - middleware: the HTTP gate, CheckAuth/RequireRole helpers
//   - httpapi: login/logout/me/refresh handlers
//   - internal/rate: failed-login counters and lockout
//
// # Integration
//
// Callers supply a [CredentialValidator] backed by their own user
// store; authcore never reads or writes credentials itself. Build an
// [Engine] and mount the handlers:
//
//	engine, err := authcore.New().
//		WithConfig(cfg).
//		WithRedis(rdb).
//		WithCredentialValidator(users).
//		Build()
package authcore
