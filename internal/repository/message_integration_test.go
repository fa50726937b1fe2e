//go:build integration

package repository_test

import (
	"errors"
	"testing"

	"github.com/slashtecho/inbox/internal/model"
	"github.com/slashtecho/inbox/internal/repository"
	"github.com/slashtecho/inbox/internal/testutil"
)

func TestIntegrationMessageRepository_CreateMessage(t *testing.T) {
	ctx, repo, _ := testutil.NewDBEnv(t)

	inbox := newInbox("alice")
	if err := repo.CreateInbox(ctx, inbox); err != nil {
		t.Fatalf("CreateInbox failed: %v", err)
	}

	msg := &model.Message{InboxID: inbox.ID, Name: "Bob", Text: "hi"}
	if err := repo.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	if msg.ID == 0 {
		t.Error("ID should be assigned")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	retrieved, err := repo.GetMessageByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetMessageByID failed: %v", err)
	}
	if retrieved.Name != "Bob" || retrieved.Text != "hi" {
		t.Errorf("message mismatch: %+v", retrieved)
	}
	if retrieved.InboxID != inbox.ID {
		t.Errorf("InboxID mismatch: got %d, want %d", retrieved.InboxID, inbox.ID)
	}
}

func TestIntegrationMessageRepository_CreateMessage_MissingInbox(t *testing.T) {
	ctx, repo, _ := testutil.NewDBEnv(t)

	msg := &model.Message{InboxID: 999999, Name: "Bob", Text: "hi"}
	if err := repo.CreateMessage(ctx, msg); err == nil {
		t.Error("expected foreign key error for missing inbox, got nil")
	}
}

func TestIntegrationMessageRepository_GetMessageByID_NotFound(t *testing.T) {
	ctx, repo, _ := testutil.NewDBEnv(t)

	_, err := repo.GetMessageByID(ctx, 999999)
	if !errors.Is(err, repository.ErrMessageNotFound) {
		t.Errorf("Expected ErrMessageNotFound, got: %v", err)
	}
}

func TestIntegrationMessageRepository_ListMessagesForInbox(t *testing.T) {
	ctx, repo, _ := testutil.NewDBEnv(t)

	alice := newInbox("alice")
	bob := newInbox("bob")
	for _, inbox := range []*model.Inbox{alice, bob} {
		if err := repo.CreateInbox(ctx, inbox); err != nil {
			t.Fatalf("CreateInbox failed: %v", err)
		}
	}

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		msg := &model.Message{InboxID: alice.ID, Name: "Bob", Text: text}
		if err := repo.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	got, err := repo.ListMessagesForInbox(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListMessagesForInbox failed: %v", err)
	}
	if len(got) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(got))
	}
	for i, text := range texts {
		if got[i].Text != text {
			t.Errorf("message %d: got %q, want %q (order should be insertion order)", i, got[i].Text, text)
		}
	}

	// Bob's inbox is unaffected.
	bobMessages, err := repo.ListMessagesForInbox(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListMessagesForInbox failed: %v", err)
	}
	if len(bobMessages) != 0 {
		t.Errorf("expected empty list for bob, got %d messages", len(bobMessages))
	}
}

func TestIntegrationMessageRepository_ListMessagesForInbox_Empty(t *testing.T) {
	ctx, repo, _ := testutil.NewDBEnv(t)

	inbox := newInbox("quiet")
	if err := repo.CreateInbox(ctx, inbox); err != nil {
		t.Fatalf("CreateInbox failed: %v", err)
	}

	got, err := repo.ListMessagesForInbox(ctx, inbox.ID)
	if err != nil {
		t.Fatalf("ListMessagesForInbox failed: %v", err)
	}
	if got == nil {
		t.Error("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 messages, got %d", len(got))
	}
}
