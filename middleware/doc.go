// Package middleware is the request gate in front of the admin surface.
//
// # Request flow
//
// Public allowlist, cookie extraction, token verification, blacklist
// check, role policy, then an optional near-expiry refresh. Any failure
// exits early: browser requests are redirected to the login page with a
// sanitized return path and a reason code, API requests get JSON 401/403
// and are never redirected.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does not
// implement authentication logic itself; verification, revocation, and
// refresh decisions all belong to [authcore.Engine].
package middleware
