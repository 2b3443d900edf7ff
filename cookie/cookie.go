// Package cookie serializes session tokens to and from the auth cookie.
// The cookie is derived state: it is always regenerated from a token
// plus a remember-me flag, never stored independently.
package cookie

import "net/http"

// DefaultName is the cookie the auth gate reads on every request.
const DefaultName = "auth_token"

const (
	sessionMaxAge    = 24 * 60 * 60      // 86400
	rememberMeMaxAge = 30 * 24 * 60 * 60 // 2592000
)

// Codec encodes and decodes the auth cookie. The zero value is not
// usable; construct with [New].
type Codec struct {
	name   string
	secure bool
}

// New returns a [Codec] for the named cookie. An empty name selects
// [DefaultName]. secure controls the Secure attribute; everything else
// (HttpOnly, SameSite=Strict, Path=/) is fixed.
func New(name string, secure bool) Codec {
	if name == "" {
		name = DefaultName
	}
	return Codec{name: name, secure: secure}
}

// Name returns the cookie name this codec reads and writes.
func (c Codec) Name() string { return c.name }

// Encode builds the Set-Cookie value carrying the token. Max-Age matches
// the token's lifetime class: 86400 for a session token, 2592000 for
// remember-me.
func (c Codec) Encode(token string, rememberMe bool) *http.Cookie {
	maxAge := sessionMaxAge
	if rememberMe {
		maxAge = rememberMeMaxAge
	}

	return &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Clear builds the Set-Cookie value that removes the auth cookie.
func (c Codec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Decode extracts the token from a raw Cookie request header. Unrelated
// cookies in the same header are ignored. The second return is false
// when the auth cookie is absent or empty.
func (c Codec) Decode(cookieHeader string) (string, bool) {
	if cookieHeader == "" {
		return "", false
	}

	// Parse leniently the way the HTTP server does, so junk cookies in
	// the same header never mask the auth cookie.
	req := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	for _, ck := range req.Cookies() {
		if ck.Name == c.name && ck.Value != "" {
			return ck.Value, true
		}
	}

	return "", false
}

// FromRequest extracts the token from the request's cookies.
func (c Codec) FromRequest(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
