// Package rate tracks consecutive failed login attempts per identifier
// and enforces a lockout once the attempt budget is exhausted.
//
// # Window semantics
//
// Fixed-window counters: increment + conditional expire on the first hit
// in the window. A successful attempt deletes the counter outright, so
// only consecutive failures accumulate. Counters evict with the window,
// bounding memory. Key prefix: rl:login:
//
// # Backing stores
//
// Counters live behind the [Store] interface: [NewRedisStore] for shared
// deployments, [NewMemoryStore] for single-instance ones. Callers depend
// only on [Limiter]; swapping the store never changes call sites.
//
// The limiter never sees credentials, only the success/failure bit of
// each attempt.
package rate
