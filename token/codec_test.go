package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCodec(t *testing.T) (*Codec, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	codec, err := NewCodec(Config{
		Secret:        testSecret,
		SessionTTL:    24 * time.Hour,
		RememberMeTTL: 30 * 24 * time.Hour,
		Issuer:        "authcore",
		Clock:         clock.Now,
	})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec, clock
}

func TestNewCodecRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"short secret", Config{Secret: []byte("short"), SessionTTL: time.Hour, RememberMeTTL: 2 * time.Hour}},
		{"zero session ttl", Config{Secret: testSecret, SessionTTL: 0, RememberMeTTL: time.Hour}},
		{"zero remember ttl", Config{Secret: testSecret, SessionTTL: time.Hour, RememberMeTTL: 0}},
		{"remember shorter than session", Config{Secret: testSecret, SessionTTL: 2 * time.Hour, RememberMeTTL: time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCodec(tc.cfg); err == nil {
				t.Fatal("expected config to be rejected")
			}
		})
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(issued)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "u1" || claims.Email != "a@b.com" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(clock.now.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt.Time)
	}
	if claims.ID == "" {
		t.Fatal("expected token ID to be set")
	}
}

func TestIssueRememberMeLifetime(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "editor", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.Verify(issued)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(clock.now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("unexpected remember-me expiry %v", claims.ExpiresAt.Time)
	}
}

func TestIssueTwiceYieldsDistinctTokens(t *testing.T) {
	codec, _ := newTestCodec(t)

	first, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue first: %v", err)
	}
	second, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}
	if first == second {
		t.Fatal("two tokens issued with identical inputs must differ")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(24*time.Hour + time.Second)
	if _, err := codec.Verify(issued); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for expired token, got %v", err)
	}
}

func TestVerifyExpiryIsStrict(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A token expiring exactly now is already invalid.
	clock.Advance(24 * time.Hour)
	if _, err := codec.Verify(issued); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid at exact expiry instant, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	codec, _ := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "viewer", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(issued, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", issued)
	}

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	tampered := []struct {
		name  string
		token string
	}{
		{"payload", parts[0] + "." + flip(parts[1]) + "." + parts[2]},
		{"signature", parts[0] + "." + parts[1] + "." + flip(parts[2])},
		{"two segments", parts[0] + "." + parts[1]},
		{"four segments", issued + ".extra"},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tc := range tampered {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := codec.Verify(tc.token); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	codec, _ := newTestCodec(t)

	other, err := NewCodec(Config{
		Secret:        []byte("ffffffffffffffffffffffffffffffff"),
		SessionTTL:    24 * time.Hour,
		RememberMeTTL: 30 * 24 * time.Hour,
		Issuer:        "authcore",
	})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	foreign, err := other.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Verify(foreign); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for foreign signature, got %v", err)
	}
}

func TestRefreshFreshTokenNotNeeded(t *testing.T) {
	codec, _ := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := codec.Refresh(issued); !errors.Is(err, ErrNoRefreshNeeded) {
		t.Fatalf("expected ErrNoRefreshNeeded, got %v", err)
	}
}

func TestRefreshNearExpiry(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	original, err := codec.Verify(issued)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	// 24h lifetime, threshold is 6h remaining. Move to 5h remaining.
	clock.Advance(19 * time.Hour)

	refreshed, rememberMe, err := codec.Refresh(issued)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rememberMe {
		t.Fatal("session-class token must refresh as session class")
	}
	if refreshed == issued {
		t.Fatal("refresh must mint a new token")
	}

	claims, err := codec.Verify(refreshed)
	if err != nil {
		t.Fatalf("verify refreshed: %v", err)
	}
	if !claims.ExpiresAt.Time.After(original.ExpiresAt.Time) {
		t.Fatalf("refreshed expiry %v not after original %v", claims.ExpiresAt.Time, original.ExpiresAt.Time)
	}
	if claims.ID == original.ID {
		t.Fatal("refreshed token must carry a fresh token ID")
	}
	if claims.Subject != "u1" || claims.Role != "admin" {
		t.Fatalf("refreshed claims mismatch: %+v", claims)
	}
}

func TestRefreshPreservesRememberMeClass(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// 30d lifetime, threshold is 7.5d remaining. Move to 7d remaining.
	clock.Advance(23 * 24 * time.Hour)

	refreshed, rememberMe, err := codec.Refresh(issued)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !rememberMe {
		t.Fatal("remember-me token must refresh as remember-me class")
	}
	claims, err := codec.Verify(refreshed)
	if err != nil {
		t.Fatalf("verify refreshed: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(clock.now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected full remember-me window, got expiry %v", claims.ExpiresAt.Time)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	codec, clock := newTestCodec(t)

	issued, err := codec.Issue("u1", "a@b.com", "admin", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(25 * time.Hour)
	if _, _, err := codec.Refresh(issued); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
