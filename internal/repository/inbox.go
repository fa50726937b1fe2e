package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/slashtecho/inbox/internal/model"
)

// Common errors for inbox repository operations.
var (
	ErrInboxNotFound = errors.New("inbox not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// CreateInbox inserts a new inbox and fills in its assigned ID and
// creation time. The unique index on username resolves concurrent
// registrations: exactly one insert succeeds, the rest get
// ErrUsernameTaken.
func (r *Repository) CreateInbox(ctx context.Context, inbox *model.Inbox) error {
	query := `
		INSERT INTO inboxes (username, hashed_password)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		inbox.Username,
		inbox.HashedPassword,
	).Scan(&inbox.ID, &inbox.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create inbox: %w", err)
	}

	return nil
}

// GetInboxByID retrieves an inbox by its ID.
func (r *Repository) GetInboxByID(ctx context.Context, id int64) (*model.Inbox, error) {
	query := `
		SELECT id, username, hashed_password, created_at
		FROM inboxes
		WHERE id = $1
	`

	var inbox model.Inbox
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inbox.ID,
		&inbox.Username,
		&inbox.HashedPassword,
		&inbox.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInboxNotFound
		}
		return nil, fmt.Errorf("failed to get inbox by ID: %w", err)
	}

	return &inbox, nil
}

// GetInboxByUsername retrieves an inbox by its unique username.
func (r *Repository) GetInboxByUsername(ctx context.Context, username string) (*model.Inbox, error) {
	query := `
		SELECT id, username, hashed_password, created_at
		FROM inboxes
		WHERE username = $1
	`

	var inbox model.Inbox
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&inbox.ID,
		&inbox.Username,
		&inbox.HashedPassword,
		&inbox.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInboxNotFound
		}
		return nil, fmt.Errorf("failed to get inbox by username: %w", err)
	}

	return &inbox, nil
}

// DeleteInbox removes an inbox. Owned messages go with it in the same
// transaction via the ON DELETE CASCADE foreign key.
func (r *Repository) DeleteInbox(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inboxes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inbox: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrInboxNotFound
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
