package models

import "time"

// Notification types dispatched by the backend.
const (
	NotificationRentReminder     = "rent_reminder"
	NotificationRentPaid         = "rent_paid"
	NotificationProofSubmitted   = "proof_submitted"
	NotificationProofReviewed    = "proof_reviewed"
	NotificationConnectRequest   = "connect_request"
	NotificationConnectAccepted  = "connect_accepted"
	NotificationComplaintUpdate  = "complaint_update"
	NotificationNoticePosted     = "notice_posted"
	NotificationNewMessage       = "new_message"
)

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Data        string    `json:"data,omitempty"` // JSON payload for the app
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
