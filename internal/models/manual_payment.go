package models

import "time"

// Manual proof verification statuses.
const (
	ProofPending  = "pending"
	ProofVerified = "verified"
	ProofRejected = "rejected"
)

// ManualPaymentProof is renter-submitted evidence of an out-of-band payment
// (bank transfer, cash, UPI without callback) awaiting owner verification.
type ManualPaymentProof struct {
	ID             string    `json:"id"`
	RenterID       string    `json:"renter_id"`
	OwnerID        string    `json:"owner_id"`
	RelationshipID string    `json:"relationship_id"`
	BillingMonth   string    `json:"billing_month"`
	Amount         float64   `json:"amount"`
	TransactionID  string    `json:"transaction_id"`
	ProofImageURL  string    `json:"proof_image_url,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SubmitProofRequest struct {
	RelationshipID     string  `json:"relationship_id"`
	ElectricBillAmount float64 `json:"electric_bill_amount"`
	TransactionID      string  `json:"transaction_id"`
	ProofImageURL      string  `json:"proof_image_url,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

type ReviewProofRequest struct {
	Status string `json:"status"` // verified or rejected
}
