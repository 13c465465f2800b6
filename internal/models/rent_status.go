package models

import (
	"errors"
	"fmt"
	"time"
)

// RentStatusValue is the payment state of a relationship for one billing month.
type RentStatusValue string

const (
	RentStatusPending RentStatusValue = "pending"
	RentStatusUnpaid  RentStatusValue = "unpaid"
	RentStatusPaid    RentStatusValue = "paid"
)

// TransitionAction is what an owner swipe or a renter payment asks the status to become.
type TransitionAction string

const (
	ActionMarkPaid   TransitionAction = "paid"
	ActionMarkUnpaid TransitionAction = "unpaid"
)

// Transition rejection reasons, surfaced verbatim to the client.
var (
	ErrAlreadyPaid        = errors.New("rent is already marked paid for this month")
	ErrUnpaidNotPending   = errors.New("can only mark unpaid when status is pending")
	ErrPaidFromWrongState = errors.New("can only mark paid when status is pending or unpaid")
)

// ValidateTransition checks whether action is legal from the current status.
// Exactly three transitions are allowed: pending→paid, unpaid→paid, pending→unpaid.
// Callers must not persist anything when an error is returned.
func ValidateTransition(current RentStatusValue, action TransitionAction) error {
	if current == RentStatusPaid {
		return ErrAlreadyPaid
	}

	switch action {
	case ActionMarkPaid:
		if current == RentStatusPending || current == RentStatusUnpaid {
			return nil
		}
		return ErrPaidFromWrongState
	case ActionMarkUnpaid:
		if current == RentStatusPending {
			return nil
		}
		return ErrUnpaidNotPending
	default:
		return fmt.Errorf("unknown transition action %q", action)
	}
}

// RentStatus is the per-relationship, per-billing-month payment state.
// At most one row exists per (relationship_id, billing_month); writes go
// through an upsert on that composite key.
type RentStatus struct {
	ID             string          `json:"id"`
	RelationshipID string          `json:"relationship_id"`
	BillingMonth   string          `json:"billing_month"`
	Status         RentStatusValue `json:"status"`
	CurrentAmount  float64         `json:"current_amount"`
	DueDate        time.Time       `json:"due_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CurrentBillingMonth returns the YYYY-MM key for now.
func CurrentBillingMonth() string {
	return time.Now().Format("2006-01")
}

// ParseBillingMonth validates a YYYY-MM string.
func ParseBillingMonth(s string) (string, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid billing month %q (want YYYY-MM): %w", s, err)
	}
	return t.Format("2006-01"), nil
}

type SetMonthlyRentRequest struct {
	Amount       float64 `json:"amount"`
	BillingMonth string  `json:"billing_month,omitempty"` // defaults to current month
	DueDay       int     `json:"due_day,omitempty"`       // day of month, defaults to 5
}

type TransitionRequest struct {
	Action       TransitionAction `json:"action"`
	BillingMonth string           `json:"billing_month,omitempty"`
}

// SwipeRequest carries the released drag gesture from an owner's renter card.
type SwipeRequest struct {
	OffsetPx       float64 `json:"offset_px"`
	VelocityPxPerS float64 `json:"velocity_px_per_s"`
	BillingMonth   string  `json:"billing_month,omitempty"`
}

// SwipeResult reports whether the release crossed a trigger threshold and the
// resulting (possibly unchanged) status.
type SwipeResult struct {
	Triggered bool             `json:"triggered"`
	Action    TransitionAction `json:"action,omitempty"`
	Status    *RentStatus      `json:"status"`
}
