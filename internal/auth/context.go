package auth

import (
	"context"

	"github.com/slashtecho/inbox/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// inboxContextKey is the context key for the authenticated inbox.
const inboxContextKey contextKey = "authenticated_inbox"

// ContextWithInbox returns a context carrying the authenticated inbox.
func ContextWithInbox(ctx context.Context, inbox *model.Inbox) context.Context {
	return context.WithValue(ctx, inboxContextKey, inbox)
}

// InboxFromContext retrieves the authenticated inbox from the context.
// Returns nil if not present.
func InboxFromContext(ctx context.Context) *model.Inbox {
	inbox, ok := ctx.Value(inboxContextKey).(*model.Inbox)
	if !ok {
		return nil
	}
	return inbox
}

// MustInboxFromContext retrieves the authenticated inbox from the context.
// Panics if not present (use only behind the auth middleware).
func MustInboxFromContext(ctx context.Context) *model.Inbox {
	inbox := InboxFromContext(ctx)
	if inbox == nil {
		panic("inbox not found in context - ensure auth middleware is applied")
	}
	return inbox
}
