package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slashtecho/inbox/internal/auth"
	"github.com/slashtecho/inbox/internal/model"
)

// InboxSource resolves a username to its inbox. Implemented by
// *repository.Repository.
type InboxSource interface {
	GetInboxByUsername(ctx context.Context, username string) (*model.Inbox, error)
}

// TokenVerifier verifies a bearer token and returns its subject.
// Implemented by *auth.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenVerifier
	Inboxes InboxSource
}

// Auth returns a middleware that authenticates requests via bearer token.
// It verifies the token, resolves the encoded subject to an inbox, and
// injects the inbox into the request context. Identity is resolved fresh
// on every request; nothing is cached.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			username, err := cfg.Tokens.Verify(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			inbox, err := cfg.Inboxes.GetInboxByUsername(r.Context(), username)
			if err != nil {
				// A valid token whose subject no longer resolves gets the
				// same rejection as a bad token.
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "unknown_subject"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			cfg.Logger.Info("authentication successful",
				slog.Int64("inbox_id", inbox.ID),
				slog.String("username", inbox.Username),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithInbox(r.Context(), inbox)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Could not validate credentials"}}`))
}
