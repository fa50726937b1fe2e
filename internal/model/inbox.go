// Package model defines domain entities for the application.
package model

import "time"

// Inbox represents a registered account identified by a unique username.
// HashedPassword holds an argon2id PHC string and is never serialized.
type Inbox struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
