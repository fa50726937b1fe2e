package dto

import (
	"time"

	"github.com/slashtecho/inbox/internal/model"
)

// SendMessageRequest represents the request body for sending a message.
// To is the recipient username; it is resolved to an inbox at write time
// and never echoed back as a stored field.
type SendMessageRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	To   string `json:"to"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageListResponse wraps a list of messages.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ToMessageResponse converts a message to a MessageResponse.
func ToMessageResponse(message *model.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Name:      message.Name,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}
}

// ToMessageListResponse converts messages to a MessageListResponse.
func ToMessageListResponse(messages []*model.Message) MessageListResponse {
	out := MessageListResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		out.Messages = append(out.Messages, ToMessageResponse(message))
	}
	return out
}
