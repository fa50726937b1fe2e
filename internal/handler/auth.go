package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/slashtecho/inbox/internal/handler/dto"
	"github.com/slashtecho/inbox/internal/service"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	svc    *service.InboxService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.InboxService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Login handles POST /login. Credentials arrive form-encoded, matching
// the OAuth2 password flow shape; success yields a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.rejectLogin(w)
		return
	}

	token, err := h.svc.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.rejectLogin(w)
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("login_succeeded", "username", username)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// rejectLogin writes the single generic 401 used for every bad login, so
// the response never reveals which credential was wrong.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect username or password")
}
