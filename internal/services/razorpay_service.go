package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/metrics"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/rentflow"
	"livenzo-backend/internal/repositories"
)

// RazorpayService handles the hosted checkout destination: order creation,
// client-side signature verification and the server-side webhook.
type RazorpayService struct {
	paymentRepo *repositories.PaymentRepository
	relRepo     *repositories.RelationshipRepository
	rentStatus  *RentStatusService
	notifier    Notifier

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	paymentRepo *repositories.PaymentRepository,
	relRepo *repositories.RelationshipRepository,
	rentStatus *RentStatusService,
	notifier Notifier,
) *RazorpayService {
	return &RazorpayService{
		paymentRepo:   paymentRepo,
		relRepo:       relRepo,
		rentStatus:    rentStatus,
		notifier:      notifier,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// IsEnabled reports whether checkout credentials are configured.
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateOrder computes the month's total, creates the Razorpay order and
// stores a pending payment row keyed by that order.
func (s *RazorpayService) CreateOrder(ctx context.Context, renterID string, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("online payments are currently disabled")
	}

	rel, err := s.relRepo.Get(ctx, req.RelationshipID)
	if err != nil {
		return nil, err
	}
	if rel.RenterID != renterID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}
	if rel.MonthlyRent <= 0 {
		return nil, fmt.Errorf("monthly rent not set for this relationship")
	}
	if req.ElectricBillAmount < 0 {
		return nil, fmt.Errorf("electric bill amount cannot be negative")
	}

	total := rel.MonthlyRent + req.ElectricBillAmount
	amountPaise := int(total * 100)
	billingMonth := models.CurrentBillingMonth()

	client := razorpay.NewClient(s.keyID, s.keySecret)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%s_%d", rel.ID[:8], time.Now().Unix()),
		"notes": map[string]interface{}{
			"relationship_id": rel.ID,
			"billing_month":   billingMonth,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	dest := rentflow.RazorpayCheckout{
		OrderID: order["id"].(string),
		KeyID:   s.keyID,
		Amount:  total,
	}

	record := &models.PaymentRecord{
		RenterID:           renterID,
		OwnerID:            rel.OwnerID,
		RelationshipID:     rel.ID,
		BillingMonth:       billingMonth,
		Amount:             dest.Amount,
		ElectricBillAmount: req.ElectricBillAmount,
		Status:             models.PaymentStatusPending,
		PaymentMethod:      dest.Method(),
		RazorpayOrderID:    dest.OrderID,
	}
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	metrics.PaymentsTotal.WithLabelValues(dest.Method(), models.PaymentStatusPending).Inc()

	return &models.CreateOrderResponse{
		OrderID:      dest.OrderID,
		AmountPaise:  amountPaise,
		Currency:     "INR",
		KeyID:        dest.KeyID,
		RentAmount:   rel.MonthlyRent,
		ElectricBill: req.ElectricBillAmount,
		Total:        dest.Amount,
	}, nil
}

// VerifyPayment checks the checkout callback signature and settles the
// payment. Re-verifying an already settled order returns the existing record.
func (s *RazorpayService) VerifyPayment(ctx context.Context, renterID string, req *models.VerifyPaymentRequest) (*models.PaymentRecord, error) {
	record, err := s.paymentRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("payment not found for order %s", req.RazorpayOrderID)
	}
	if record.RenterID != renterID {
		return nil, ErrNotAuthorized
	}
	if record.Status == models.PaymentStatusPaid {
		return record, nil
	}

	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		record.Status = models.PaymentStatusFailed
		if err := s.paymentRepo.Upsert(ctx, record); err != nil {
			log.Printf("[Razorpay] Failed to mark payment failed: %v", err)
		}
		metrics.PaymentsTotal.WithLabelValues(models.PaymentMethodRazorpay, models.PaymentStatusFailed).Inc()
		return nil, fmt.Errorf("invalid payment signature")
	}

	return s.settle(ctx, record, req.RazorpayPaymentID)
}

// verifySignature checks the HMAC-SHA256 of "order_id|payment_id".
func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the webhook body signature. Verification is
// skipped when no webhook secret is configured.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles Razorpay webhook events. Events for already settled
// orders are acknowledged without reprocessing.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handleCaptured(ctx, payload)
	case "payment.failed":
		return s.handleFailed(ctx, payload)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

func (s *RazorpayService) handleCaptured(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)
	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("payment not found for order %s", orderID)
	}
	if record.Status == models.PaymentStatusPaid {
		log.Printf("[Razorpay] Payment already processed: %s", orderID)
		return nil
	}

	_, err = s.settle(ctx, record, paymentID)
	return err
}

func (s *RazorpayService) handleFailed(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)
	orderID, _ := entity["order_id"].(string)
	if orderID == "" {
		return nil
	}

	record, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil || record == nil {
		return err
	}
	if record.Status == models.PaymentStatusPaid {
		return nil
	}

	record.Status = models.PaymentStatusFailed
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return err
	}
	metrics.PaymentsTotal.WithLabelValues(models.PaymentMethodRazorpay, models.PaymentStatusFailed).Inc()
	return nil
}

// settle marks the record paid and pushes the rent status to paid.
func (s *RazorpayService) settle(ctx context.Context, record *models.PaymentRecord, paymentID string) (*models.PaymentRecord, error) {
	now := time.Now()
	record.Status = models.PaymentStatusPaid
	record.RazorpayPaymentID = paymentID
	record.PaymentDate = &now
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	metrics.PaymentsTotal.WithLabelValues(models.PaymentMethodRazorpay, models.PaymentStatusPaid).Inc()

	_, err := s.rentStatus.Transition(ctx, record.RenterID, record.RelationshipID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: record.BillingMonth,
	})
	if err != nil && !errors.Is(err, models.ErrAlreadyPaid) {
		log.Printf("[Razorpay] Failed to mark rent paid for %s: %v", record.RelationshipID, err)
	}

	cache.InvalidateRentCaches(ctx, record.OwnerID, record.RelationshipID)
	return record, nil
}

// webhookEntity digs the payment entity out of the webhook payload shape.
func webhookEntity(payload map[string]interface{}) map[string]interface{} {
	entity := payload
	if p, ok := payload["payment"].(map[string]interface{}); ok {
		entity = p
	}
	if e, ok := entity["entity"].(map[string]interface{}); ok {
		entity = e
	}
	return entity
}
