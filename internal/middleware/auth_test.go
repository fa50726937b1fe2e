package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slashtecho/inbox/internal/auth"
	"github.com/slashtecho/inbox/internal/model"
	"github.com/slashtecho/inbox/internal/repository"
)

type fakeInboxSource struct {
	inboxes map[string]*model.Inbox
}

func (f *fakeInboxSource) GetInboxByUsername(_ context.Context, username string) (*model.Inbox, error) {
	inbox, ok := f.inboxes[username]
	if !ok {
		return nil, repository.ErrInboxNotFound
	}
	return inbox, nil
}

func newAuthEnv(t *testing.T) (*auth.TokenIssuer, func(http.Handler) http.Handler) {
	t.Helper()

	issuer, err := auth.NewTokenIssuer("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	source := &fakeInboxSource{inboxes: map[string]*model.Inbox{
		"alice": {ID: 1, Username: "alice"},
	}}

	mw := Auth(AuthConfig{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:  issuer,
		Inboxes: source,
	})

	return issuer, mw
}

func identityEcho(t *testing.T, want string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inbox := auth.MustInboxFromContext(r.Context())
		if inbox.Username != want {
			t.Errorf("expected inbox %q in context, got %q", want, inbox.Username)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	issuer, mw := newAuthEnv(t)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/inboxes/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(identityEcho(t, "alice")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	issuer, mw := newAuthEnv(t)

	ghostToken, err := issuer.Issue("ghost") // verifies, but resolves to nothing
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic YWxpY2U6c2VjcmV0"},
		{"garbage token", "Bearer not-a-jwt"},
		{"unknown subject", "Bearer " + ghostToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/inboxes/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			called := false
			mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			if called {
				t.Error("downstream handler should not run on auth failure")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("expected WWW-Authenticate: Bearer, got %q", got)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	_, mw := newAuthEnv(t)

	// Same secret and algorithm, but tokens live only a millisecond.
	shortIssuer, err := auth.NewTokenIssuer("test-secret", "HS256", time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	token, err := shortIssuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/inboxes/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream handler should not run for expired token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
