package authcore

import (
	"context"
	"fmt"
	"strings"
)

// Role is an ordered privilege level: viewer < editor < admin. The
// ordering is the only role comparison in the module; every caller goes
// through [Role.AtLeast].
type Role uint8

const (
	// RoleViewer can read the admin surface but change nothing.
	RoleViewer Role = iota + 1
	// RoleEditor can edit content but not approve, delete, or manage users.
	RoleEditor
	// RoleAdmin holds every permission.
	RoleAdmin
)

// ParseRole maps the wire representation to a [Role].
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "viewer":
		return RoleViewer, nil
	case "editor":
		return RoleEditor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleViewer:
		return "viewer"
	case RoleEditor:
		return "editor"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// AtLeast reports whether r holds the privilege of min or more.
func (r Role) AtLeast(min Role) bool { return r >= min }

// UserSession is the authenticated identity handed to downstream
// handlers. It never carries credentials or the raw token.
type UserSession struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// MarshalJSON is implemented on Role so UserSession serializes roles as
// their wire names.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses the wire name back into a Role.
func (r *Role) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRole(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AuthResult is the outcome of a request-level authentication check.
// When Authenticated is false, Err holds the reason and User/Role are
// zero values that must not be trusted.
type AuthResult struct {
	Authenticated bool
	User          UserSession
	Role          Role
	Err           error
}

// LoginRequest is the input to [Engine.Login].
type LoginRequest struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	User       UserSession
	Token      string
	RememberMe bool
}

// CredentialValidator is the external user store contract. It must
// return [ErrInvalidCredentials] (possibly wrapped) for any credential
// failure; authcore collapses every other error into a generic internal
// failure before it can reach a client.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, email, password string) (UserSession, error)
}
