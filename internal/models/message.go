package models

import "time"

// Message is one chat message inside a relationship.
type Message struct {
	ID             string    `json:"id"`
	RelationshipID string    `json:"relationship_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}
