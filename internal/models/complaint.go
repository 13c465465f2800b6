package models

import "time"

// Complaint statuses.
const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
)

// Complaint is filed by a renter against their relationship; the owner moves
// it through open → in_progress → resolved.
type Complaint struct {
	ID             string    `json:"id"`
	RelationshipID string    `json:"relationship_id"`
	RenterID       string    `json:"renter_id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateComplaintRequest struct {
	RelationshipID string `json:"relationship_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
}

type UpdateComplaintRequest struct {
	Status string `json:"status"`
}
