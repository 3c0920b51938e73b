package models

import "time"

// ChatMessage is a moderated chat message retained in a classroom's
// in-memory history. Immutable once created.
type ChatMessage struct {
	ID         string    `json:"id"`
	ClassID    string    `json:"class_id"`
	SenderName string    `json:"sender_name"`
	SenderType Role      `json:"sender_type"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsDoubt    bool      `json:"is_doubt"`
}
