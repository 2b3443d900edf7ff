package middleware

import (
	"context"
	"testing"
	"time"

	authcore "github.com/hablas-app/authcore"
)

const testPassword = "correct-horse-battery"

type fakeValidator struct {
	password string
	users    map[string]authcore.UserSession
}

func (v *fakeValidator) ValidateCredentials(_ context.Context, email, password string) (authcore.UserSession, error) {
	user, ok := v.users[email]
	if !ok || password != v.password {
		return authcore.UserSession{}, authcore.ErrInvalidCredentials
	}
	return user, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*authcore.Engine, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	cfg := authcore.DefaultConfig()
	cfg.Token.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.Token.Clock = clock.Now
	cfg.Cookie.Secure = false

	engine, err := authcore.New().
		WithConfig(cfg).
		WithCredentialValidator(&fakeValidator{
			password: testPassword,
			users: map[string]authcore.UserSession{
				"viewer@example.com": {ID: "user-viewer", Email: "viewer@example.com", Role: authcore.RoleViewer, Name: "viewer"},
				"editor@example.com": {ID: "user-editor", Email: "editor@example.com", Role: authcore.RoleEditor, Name: "editor"},
				"admin@example.com":  {ID: "user-admin", Email: "admin@example.com", Role: authcore.RoleAdmin, Name: "admin"},
			},
		}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	return engine, clock
}

func issueToken(t *testing.T, engine *authcore.Engine, email string, rememberMe bool) string {
	t.Helper()

	ctx := authcore.WithClientIP(context.Background(), "203.0.113.9")
	result, err := engine.Login(ctx, authcore.LoginRequest{
		Email:      email,
		Password:   testPassword,
		RememberMe: rememberMe,
	})
	if err != nil {
		t.Fatalf("Login(%q) error = %v", email, err)
	}
	return result.Token
}
