// Package httpapi exposes the auth endpoints: login, logout, current
// user, and token refresh. Handlers translate HTTP to [authcore.Engine]
// calls and map every failure to a generic response body; store error
// text and credential detail never reach a client.
package httpapi
