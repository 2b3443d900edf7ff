// Package token issues, verifies, and refreshes the HMAC-signed session
// tokens that carry authenticated identity through the admin surface.
//
// # Failure semantics
//
// Verification collapses every failure (malformed structure, signature
// mismatch, unparseable payload, expiry) into the single [ErrInvalid]
// sentinel so callers cannot leak why a token was rejected. Expiry is
// strict: a token whose expiry equals the current instant is invalid.
//
// Revocation lives in package session; this package never touches a
// store, and refresh always mints a new token rather than mutating the
// old one.
package token
