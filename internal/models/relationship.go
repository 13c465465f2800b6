package models

import "time"

// Relationship statuses.
const (
	RelationshipPending  = "pending"
	RelationshipAccepted = "accepted"
	RelationshipDeclined = "declined"
	RelationshipEnded    = "ended"
)

// Relationship is the accepted connection between one owner and one renter
// for a property. All rent state is scoped to a relationship.
type Relationship struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	RenterID     string    `json:"renter_id"`
	PropertyName string    `json:"property_name"`
	Status       string    `json:"status"`
	MonthlyRent  float64   `json:"monthly_rent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined projections for list views (avoids untyped join bags).
	OwnerName  string `json:"owner_name,omitempty"`
	RenterName string `json:"renter_name,omitempty"`
}

// ActiveRenter is the owner dashboard projection: one accepted relationship
// joined with the renter and the current month's rent status.
type ActiveRenter struct {
	Relationship  Relationship    `json:"relationship"`
	RenterName    string          `json:"renter_name"`
	RenterPhone   string          `json:"renter_phone"`
	BillingMonth  string          `json:"billing_month"`
	RentStatus    RentStatusValue `json:"rent_status"`
	AmountDue     float64         `json:"amount_due"`
	HasMeterPhoto bool            `json:"has_meter_photo"`
}

type ConnectRequest struct {
	OwnerID      string `json:"owner_id"`
	PropertyName string `json:"property_name"`
}
