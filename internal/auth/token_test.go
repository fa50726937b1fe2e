package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-signing-secret", "HS256", ttl)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	return issuer
}

func TestNewTokenIssuer_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secret    string
		algorithm string
		ttl       time.Duration
	}{
		{"empty secret", "", "HS256", time.Minute},
		{"zero ttl", "secret", "HS256", 0},
		{"negative ttl", "secret", "HS256", -time.Minute},
		{"rsa algorithm", "secret", "RS256", time.Minute},
		{"none algorithm", "secret", "none", time.Minute},
		{"unknown algorithm", "secret", "XX999", time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTokenIssuer(tt.secret, tt.algorithm, tt.ttl)
			if err == nil {
				t.Error("expected constructor error, got nil")
			}
		})
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject mismatch: got %q, want %q", subject, "alice")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)
	// Shrink the ttl after construction checks pass so the token is
	// already expired when verified.
	issuer.ttl = -time.Minute

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got: %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	other, err := NewTokenIssuer("a-different-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestTokenIssuer_AlgorithmPinned(t *testing.T) {
	t.Parallel()

	hs256 := newTestIssuer(t, time.Hour)

	hs512, err := NewTokenIssuer("test-signing-secret", "HS512", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	// Same secret, different algorithm: must still be rejected.
	token, err := hs512.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := hs256.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong algorithm, got: %v", err)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"three dots of nothing", ".."},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := issuer.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got: %v", err)
			}
		})
	}
}

func TestTokenIssuer_DistinctTokens(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	t1, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	t2, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// The jti claim makes every minted token unique.
	if t1 == t2 {
		t.Error("two tokens for the same subject should differ")
	}
}
