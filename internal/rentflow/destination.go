package rentflow

import (
	"fmt"
	"net/url"

	"livenzo-backend/internal/models"
)

// Destination is where the computed total gets paid. The three variants are
// mutually exclusive; there is no flag soup threaded through handlers.
type Destination interface {
	destination()
	Method() string
}

// UpiIntent is a raw UPI deep link with no callback; success is self-reported
// by the renter and confirmed by the owner later.
type UpiIntent struct {
	PayeeVPA  string
	PayeeName string
	Amount    float64
	Note      string
}

func (UpiIntent) destination()   {}
func (UpiIntent) Method() string { return models.PaymentMethodUpiManual }

// IntentURL builds the upi://pay deep link for the destination.
func (u UpiIntent) IntentURL() string {
	q := url.Values{}
	q.Set("pa", u.PayeeVPA)
	q.Set("pn", u.PayeeName)
	q.Set("am", fmt.Sprintf("%.2f", u.Amount))
	q.Set("cu", "INR")
	if u.Note != "" {
		q.Set("tn", u.Note)
	}
	return "upi://pay?" + q.Encode()
}

// RazorpayCheckout is a hosted checkout order; the provider calls back with a
// signed payment id for verification.
type RazorpayCheckout struct {
	OrderID string
	KeyID   string
	Amount  float64
}

func (RazorpayCheckout) destination()   {}
func (RazorpayCheckout) Method() string { return models.PaymentMethodRazorpay }

// ManualProof is an out-of-band payment backed by a transaction id and an
// optional screenshot, pending owner verification.
type ManualProof struct {
	TransactionID string
	ProofImageURL string
	Notes         string
	Amount        float64
}

func (ManualProof) destination()   {}
func (ManualProof) Method() string { return models.PaymentMethodUpiManual }
