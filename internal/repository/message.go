package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/slashtecho/inbox/internal/model"
)

// ErrMessageNotFound is returned when no message matches the lookup.
var ErrMessageNotFound = errors.New("message not found")

// CreateMessage inserts a new message owned by inbox InboxID and fills in
// its assigned ID and creation time. The foreign key guarantees the owning
// inbox exists; callers resolve the recipient before insert.
func (r *Repository) CreateMessage(ctx context.Context, message *model.Message) error {
	query := `
		INSERT INTO messages (inbox_id, name, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		message.InboxID,
		message.Name,
		message.Text,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetMessageByID retrieves a message by its ID.
func (r *Repository) GetMessageByID(ctx context.Context, id int64) (*model.Message, error) {
	query := `
		SELECT id, inbox_id, name, text, created_at
		FROM messages
		WHERE id = $1
	`

	var message model.Message
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.InboxID,
		&message.Name,
		&message.Text,
		&message.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message by ID: %w", err)
	}

	return &message, nil
}

// ListMessagesForInbox retrieves all messages owned by the given inbox,
// oldest first. Unpaginated.
func (r *Repository) ListMessagesForInbox(ctx context.Context, inboxID int64) ([]*model.Message, error) {
	query := `
		SELECT id, inbox_id, name, text, created_at
		FROM messages
		WHERE inbox_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, inboxID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*model.Message, 0)
	for rows.Next() {
		var message model.Message
		if err := rows.Scan(
			&message.ID,
			&message.InboxID,
			&message.Name,
			&message.Text,
			&message.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}
