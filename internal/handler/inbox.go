package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/slashtecho/inbox/internal/auth"
	"github.com/slashtecho/inbox/internal/handler/dto"
	"github.com/slashtecho/inbox/internal/service"
)

// InboxHandler handles HTTP requests for inbox operations.
type InboxHandler struct {
	svc    *service.InboxService
	logger *slog.Logger
}

// NewInboxHandler creates a new InboxHandler.
func NewInboxHandler(svc *service.InboxService, logger *slog.Logger) *InboxHandler {
	return &InboxHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /inboxes/.
func (h *InboxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInboxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	inbox, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("inbox_registered",
		"inbox_id", inbox.ID,
		"username", inbox.Username,
	)

	writeJSON(w, http.StatusCreated, dto.ToInboxResponse(inbox, nil))
}

// Get handles GET /inboxes/. Requires the auth middleware; returns the
// caller's inbox including its message list.
func (h *InboxHandler) Get(w http.ResponseWriter, r *http.Request) {
	inbox := auth.MustInboxFromContext(r.Context())

	messages, err := h.svc.ListMessages(r.Context(), inbox.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToInboxResponse(inbox, messages))
}

// handleServiceError maps service errors to HTTP responses.
func (h *InboxHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, "INVALID_USERNAME", "Username must be 3-64 lowercase letters, digits, '_' or '-'")
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "INVALID_PASSWORD", "Password must be 6-256 characters")
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already taken")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
