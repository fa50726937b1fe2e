// Package model defines domain entities for the application.
package model

import "time"

// Message represents a text payload delivered to exactly one inbox.
// The recipient username of a send request is resolved to InboxID at
// write time and not stored on its own.
type Message struct {
	ID        int64     `json:"id"`
	InboxID   int64     `json:"inbox_id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
