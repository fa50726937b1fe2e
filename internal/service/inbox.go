// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/slashtecho/inbox/internal/auth"
	"github.com/slashtecho/inbox/internal/model"
	"github.com/slashtecho/inbox/internal/repository"
)

// Service errors.
var (
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrRecipientNotFound  = errors.New("recipient inbox not found")
	ErrMissingField       = errors.New("missing required field")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
)

// Username validation regex: 3-64 chars, lowercase alphanumeric plus
// underscore and hyphen.
var usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,64}$`)

const (
	minPasswordLength = 6
	maxPasswordLength = 256
	maxNameLength     = 256
	maxTextLength     = 4096
)

// InboxService handles registration, login and messaging flows.
type InboxService struct {
	repo   *repository.Repository
	tokens *auth.TokenIssuer
}

// NewInboxService creates a new InboxService.
func NewInboxService(repo *repository.Repository, tokens *auth.TokenIssuer) *InboxService {
	return &InboxService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a new inbox with a hashed password.
// The plaintext password is never persisted.
func (s *InboxService) Register(ctx context.Context, username, password string) (*model.Inbox, error) {
	if !ValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !ValidPassword(password) {
		return nil, ErrInvalidPassword
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	inbox := &model.Inbox{
		Username:       username,
		HashedPassword: hashed,
	}

	if err := s.repo.CreateInbox(ctx, inbox); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return inbox, nil
}

// Authenticate checks the credentials and mints a bearer token bound to
// the username. An unknown username and a wrong password both collapse
// into ErrInvalidCredentials so callers cannot tell which field was wrong.
func (s *InboxService) Authenticate(ctx context.Context, username, password string) (string, error) {
	inbox, err := s.repo.GetInboxByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrInboxNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	match, err := auth.VerifyPassword(password, inbox.HashedPassword)
	if err != nil {
		// Malformed stored hash is a server-side fault, not bad input.
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(inbox.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// SendMessageInput defines input for sending a message.
type SendMessageInput struct {
	Name string
	Text string
	To   string
}

// SendMessage resolves the recipient inbox by username and persists the
// message against it. An unresolvable recipient fails with
// ErrRecipientNotFound and persists nothing.
func (s *InboxService) SendMessage(ctx context.Context, input SendMessageInput) (*model.Message, error) {
	if err := validateSendMessage(input); err != nil {
		return nil, err
	}

	recipient, err := s.repo.GetInboxByUsername(ctx, input.To)
	if err != nil {
		if errors.Is(err, repository.ErrInboxNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	message := &model.Message{
		InboxID: recipient.ID,
		Name:    input.Name,
		Text:    input.Text,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListMessages returns all messages owned by the given inbox, unpaginated.
func (s *InboxService) ListMessages(ctx context.Context, inboxID int64) ([]*model.Message, error) {
	return s.repo.ListMessagesForInbox(ctx, inboxID)
}

// ValidUsername reports whether the username has an acceptable shape.
func ValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidPassword reports whether the password has an acceptable length.
func ValidPassword(password string) bool {
	return len(password) >= minPasswordLength && len(password) <= maxPasswordLength
}

func validateSendMessage(input SendMessageInput) error {
	if input.To == "" || input.Name == "" || input.Text == "" {
		return ErrMissingField
	}
	if len(input.Name) > maxNameLength || len(input.Text) > maxTextLength {
		return ErrFieldTooLong
	}
	return nil
}
