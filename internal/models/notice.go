package models

import "time"

// Notice is posted by an owner to a renter (rent revision, vacate notice, etc.).
type Notice struct {
	ID             string    `json:"id"`
	RelationshipID string    `json:"relationship_id"`
	OwnerID        string    `json:"owner_id"`
	RenterID       string    `json:"renter_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateNoticeRequest struct {
	RelationshipID string `json:"relationship_id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}
