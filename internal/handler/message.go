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

// MessageHandler handles HTTP requests for message operations.
type MessageHandler struct {
	svc    *service.InboxService
	logger *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *service.InboxService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		svc:    svc,
		logger: logger,
	}
}

// Send handles POST /messages/send. Unauthenticated: anyone may drop a
// message into a named inbox.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	message, err := h.svc.SendMessage(r.Context(), service.SendMessageInput{
		Name: req.Name,
		Text: req.Text,
		To:   req.To,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("message_sent",
		"message_id", message.ID,
		"inbox_id", message.InboxID,
	)

	writeJSON(w, http.StatusCreated, dto.ToMessageResponse(message))
}

// List handles GET /messages/. Requires the auth middleware; returns all
// messages owned by the caller, unpaginated.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	inbox := auth.MustInboxFromContext(r.Context())

	messages, err := h.svc.ListMessages(r.Context(), inbox.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMessageListResponse(messages))
}

// handleServiceError maps service errors to HTTP responses.
func (h *MessageHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", "Fields name, text and to are required")
	case errors.Is(err, service.ErrFieldTooLong):
		writeError(w, http.StatusUnprocessableEntity, "FIELD_TOO_LONG", "Field exceeds maximum length")
	case errors.Is(err, service.ErrRecipientNotFound):
		writeError(w, http.StatusNotFound, "RECIPIENT_NOT_FOUND", "Recipient inbox not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
