package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment methods.
const (
	PaymentMethodManualSwipe = "manual_swipe" // owner swiped the renter card
	PaymentMethodUpiManual   = "upi_manual"   // renter paid over a UPI deep link
	PaymentMethodRazorpay    = "razorpay"     // hosted checkout
	PaymentMethodOwnerEntry  = "owner_entered"
)

// PaymentRecord is the payment for a relationship's billing month. Upserted on
// (renter_id, owner_id, billing_month); the latest row for the current month
// is the active one shown in the app.
type PaymentRecord struct {
	ID                 string     `json:"id"`
	RenterID           string     `json:"renter_id"`
	OwnerID            string     `json:"owner_id"`
	RelationshipID     string     `json:"relationship_id"`
	BillingMonth       string     `json:"billing_month"`
	Amount             float64    `json:"amount"`
	ElectricBillAmount float64    `json:"electric_bill_amount,omitempty"`
	Status             string     `json:"status"`
	PaymentMethod      string     `json:"payment_method"`
	TransactionID      string     `json:"transaction_id,omitempty"`
	RazorpayOrderID    string     `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID  string     `json:"razorpay_payment_id,omitempty"`
	PaymentDate        *time.Time `json:"payment_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type CreateOrderRequest struct {
	RelationshipID     string  `json:"relationship_id"`
	ElectricBillAmount float64 `json:"electric_bill_amount"`
}

type CreateOrderResponse struct {
	OrderID      string  `json:"order_id"`
	AmountPaise  int     `json:"amount"` // Razorpay uses paise
	Currency     string  `json:"currency"`
	KeyID        string  `json:"key_id"`
	RentAmount   float64 `json:"rent_amount"`
	ElectricBill float64 `json:"electric_bill_amount"`
	Total        float64 `json:"total"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type UpiIntentRequest struct {
	RelationshipID     string  `json:"relationship_id"`
	ElectricBillAmount float64 `json:"electric_bill_amount"`
}

type UpiIntentResponse struct {
	IntentURL string  `json:"intent_url"`
	Total     float64 `json:"total"`
	PayeeVPA  string  `json:"payee_vpa"`
}
