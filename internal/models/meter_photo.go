package models

import "time"

// MeterPhoto is a renter-submitted photo of a utility meter for one billing
// month. Multiple photos per month are allowed; the latest one is shown to
// the owner.
type MeterPhoto struct {
	ID             string    `json:"id"`
	RelationshipID string    `json:"relationship_id"`
	RenterID       string    `json:"renter_id"`
	OwnerID        string    `json:"owner_id"`
	BillingMonth   string    `json:"billing_month"`
	PhotoURL       string    `json:"photo_url"`
	FileSize       int64     `json:"file_size"`
	CreatedAt      time.Time `json:"created_at"`
}
