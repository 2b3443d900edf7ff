package main

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authcore "github.com/hablas-app/authcore"
)

// staticValidator checks credentials against the single account from the
// environment. The bcrypt comparison runs even for unknown emails so
// both failure modes cost the same.
type staticValidator struct {
	user         authcore.UserSession
	passwordHash []byte
}

func newStaticValidator(email, passwordHash, role string) (*staticValidator, error) {
	parsed, err := authcore.ParseRole(role)
	if err != nil {
		return nil, err
	}

	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}

	return &staticValidator{
		user: authcore.UserSession{
			ID:    "admin",
			Email: email,
			Role:  parsed,
			Name:  name,
		},
		passwordHash: []byte(passwordHash),
	}, nil
}

func (v *staticValidator) ValidateCredentials(_ context.Context, email, password string) (authcore.UserSession, error) {
	match := strings.EqualFold(email, v.user.Email)
	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil || !match {
		return authcore.UserSession{}, authcore.ErrInvalidCredentials
	}
	return v.user, nil
}
