package middleware

import (
	"strings"

	authcore "github.com/hablas-app/authcore"
)

// RoleRule binds a path prefix to the minimum role it requires.
type RoleRule struct {
	Prefix  string
	MinRole authcore.Role
}

// Policy declares which paths bypass the gate entirely and which role a
// protected path demands. Paths with no matching rule require any
// authenticated role.
type Policy struct {
	// LoginPath receives unauthenticated browser redirects.
	LoginPath      string
	PublicExact    []string
	PublicPrefixes []string
	RoleRules      []RoleRule
}

// DefaultPolicy covers the admin surface: the login and reset pages,
// the auth API, and static assets are public; everything else requires
// an authenticated session.
func DefaultPolicy() Policy {
	return Policy{
		LoginPath: "/admin/login",
		PublicExact: []string{
			"/admin/login",
			"/admin/reset-password",
			"/favicon.ico",
		},
		PublicPrefixes: []string{
			"/api/auth/",
			"/_next/static/",
			"/_next/image/",
			"/images/",
		},
	}
}

// IsPublic reports whether the path bypasses authentication.
func (p Policy) IsPublic(path string) bool {
	for _, exact := range p.PublicExact {
		if path == exact {
			return true
		}
	}
	for _, prefix := range p.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequiredRole returns the minimum role for the path. The longest
// matching prefix wins; the second return is false when no rule
// matches, meaning any authenticated role suffices.
func (p Policy) RequiredRole(path string) (authcore.Role, bool) {
	var best RoleRule
	found := false
	for _, rule := range p.RoleRules {
		if strings.HasPrefix(path, rule.Prefix) && (!found || len(rule.Prefix) > len(best.Prefix)) {
			best = rule
			found = true
		}
	}
	return best.MinRole, found
}

// SanitizeRedirect reduces a requested return path to a same-origin
// relative path. Absolute URLs, protocol-relative URLs, and anything
// not starting with a single "/" collapse to "/" so the redirect query
// parameter can never send the browser off-origin or into a
// javascript: scheme.
func SanitizeRedirect(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		return "/"
	}
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	if strings.ContainsAny(path, "\r\n") {
		return "/"
	}
	return path
}
