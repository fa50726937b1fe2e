// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/slashtecho/inbox/internal/model"
)

// CreateInboxRequest represents the request body for registering an inbox.
type CreateInboxRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// InboxResponse represents an inbox in API responses.
// The password hash is never part of it.
type InboxResponse struct {
	ID        int64             `json:"id"`
	Username  string            `json:"username"`
	CreatedAt time.Time         `json:"created_at"`
	Messages  []MessageResponse `json:"messages"`
}

// ToInboxResponse converts an inbox and its messages to an InboxResponse.
func ToInboxResponse(inbox *model.Inbox, messages []*model.Message) InboxResponse {
	out := InboxResponse{
		ID:        inbox.ID,
		Username:  inbox.Username,
		CreatedAt: inbox.CreatedAt,
		Messages:  make([]MessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		out.Messages = append(out.Messages, ToMessageResponse(message))
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
