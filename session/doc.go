// Package session keeps the revocation registry for issued session
// tokens. A token is revoked by blacklisting its token ID until the
// moment the token would have expired on its own; after that the entry
// is worthless, because verification already rejects the token.
//
// # Consistency
//
// A blacklist write is visible to every Contains call issued after it
// returns. Reads and writes are safe under full request concurrency.
// Store failures surface as [ErrStoreUnavailable] and callers deny:
// an unreadable blacklist never admits a token.
package session
