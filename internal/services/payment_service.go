package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/metrics"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/rentflow"
	"livenzo-backend/internal/repositories"
)

var (
	ErrProofNotFound   = errors.New("payment proof not found")
	ErrProofNotPending = errors.New("payment proof already reviewed")
	ErrNoOwnerUpi      = errors.New("owner has no UPI ID configured")
)

// PaymentService handles the non-gateway payment destinations: UPI deep links
// and manually proven out-of-band payments.
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	proofRepo   *repositories.ManualPaymentRepository
	relRepo     *repositories.RelationshipRepository
	userRepo    *repositories.UserRepository
	rentStatus  *RentStatusService
	notifier    Notifier
}

func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	proofRepo *repositories.ManualPaymentRepository,
	relRepo *repositories.RelationshipRepository,
	userRepo *repositories.UserRepository,
	rentStatus *RentStatusService,
	notifier Notifier,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		proofRepo:   proofRepo,
		relRepo:     relRepo,
		userRepo:    userRepo,
		rentStatus:  rentStatus,
		notifier:    notifier,
	}
}

// UpiIntent computes the month's total and builds the upi://pay deep link to
// the owner's VPA. A pending payment row is written so the owner sees an
// attempt in progress; there is no callback, the renter self-reports after.
func (s *PaymentService) UpiIntent(ctx context.Context, renterID string, req *models.UpiIntentRequest) (*models.UpiIntentResponse, error) {
	rel, total, err := s.prepare(ctx, renterID, req.RelationshipID, req.ElectricBillAmount)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.Get(ctx, rel.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.UpiID == "" {
		return nil, ErrNoOwnerUpi
	}

	billingMonth := models.CurrentBillingMonth()
	dest := rentflow.UpiIntent{
		PayeeVPA:  owner.UpiID,
		PayeeName: owner.Name,
		Amount:    total,
		Note:      fmt.Sprintf("Rent %s %s", rel.PropertyName, billingMonth),
	}

	record := &models.PaymentRecord{
		RenterID:           renterID,
		OwnerID:            rel.OwnerID,
		RelationshipID:     rel.ID,
		BillingMonth:       billingMonth,
		Amount:             total,
		ElectricBillAmount: req.ElectricBillAmount,
		Status:             models.PaymentStatusPending,
		PaymentMethod:      dest.Method(),
	}
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(dest.Method(), models.PaymentStatusPending).Inc()

	return &models.UpiIntentResponse{
		IntentURL: dest.IntentURL(),
		Total:     total,
		PayeeVPA:  owner.UpiID,
	}, nil
}

// SubmitProof records renter-submitted evidence of an out-of-band payment and
// asks the owner to verify it.
func (s *PaymentService) SubmitProof(ctx context.Context, renterID string, req *models.SubmitProofRequest) (*models.ManualPaymentProof, error) {
	rel, total, err := s.prepare(ctx, renterID, req.RelationshipID, req.ElectricBillAmount)
	if err != nil {
		return nil, err
	}
	if req.TransactionID == "" {
		return nil, fmt.Errorf("transaction id is required")
	}

	billingMonth := models.CurrentBillingMonth()
	dest := rentflow.ManualProof{
		TransactionID: req.TransactionID,
		ProofImageURL: req.ProofImageURL,
		Notes:         req.Notes,
		Amount:        total,
	}

	proof := &models.ManualPaymentProof{
		RenterID:       renterID,
		OwnerID:        rel.OwnerID,
		RelationshipID: rel.ID,
		BillingMonth:   billingMonth,
		Amount:         dest.Amount,
		TransactionID:  dest.TransactionID,
		ProofImageURL:  dest.ProofImageURL,
		Notes:          dest.Notes,
	}
	if err := s.proofRepo.Create(ctx, proof); err != nil {
		return nil, err
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
		TransactionID:      dest.TransactionID,
	}
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, rel.OwnerID, models.NotificationProofSubmitted,
		"Payment proof submitted",
		fmt.Sprintf("Payment of ₹%.2f for %s awaits your verification.", total, billingMonth),
		map[string]string{"proof_id": proof.ID, "relationship_id": rel.ID})
	if err != nil {
		log.Printf("[Payment] Failed to notify owner %s: %v", rel.OwnerID, err)
	}

	return proof, nil
}

// ReviewProof applies the owner's verdict. Verification marks the month paid
// through the regular transition path; rejection leaves the status untouched.
func (s *PaymentService) ReviewProof(ctx context.Context, ownerID, proofID string, req *models.ReviewProofRequest) (*models.ManualPaymentProof, error) {
	if req.Status != models.ProofVerified && req.Status != models.ProofRejected {
		return nil, fmt.Errorf("review status must be %q or %q", models.ProofVerified, models.ProofRejected)
	}

	proof, err := s.proofRepo.Get(ctx, proofID)
	if err != nil {
		return nil, err
	}
	if proof == nil {
		return nil, ErrProofNotFound
	}
	if proof.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}
	if proof.Status != models.ProofPending {
		return nil, ErrProofNotPending
	}

	if err := s.proofRepo.UpdateStatus(ctx, proofID, req.Status); err != nil {
		return nil, err
	}
	proof.Status = req.Status

	if req.Status == models.ProofVerified {
		if err := s.settle(ctx, proof.RenterID, proof.OwnerID, proof.RelationshipID, proof.BillingMonth, proof.TransactionID); err != nil {
			return nil, err
		}
	}

	title := "Payment proof verified"
	if req.Status == models.ProofRejected {
		title = "Payment proof rejected"
	}
	err = s.notifier.Notify(ctx, proof.RenterID, models.NotificationProofReviewed,
		title,
		fmt.Sprintf("Your payment proof for %s was %s.", proof.BillingMonth, req.Status),
		map[string]string{"proof_id": proof.ID, "relationship_id": proof.RelationshipID})
	if err != nil {
		log.Printf("[Payment] Failed to notify renter %s: %v", proof.RenterID, err)
	}

	return proof, nil
}

// RecordOwnerEntry lets the owner log a payment collected offline (cash,
// direct transfer) and marks the month paid.
func (s *PaymentService) RecordOwnerEntry(ctx context.Context, ownerID, relationshipID string, electricBill float64) (*models.PaymentRecord, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}
	if electricBill < 0 {
		return nil, rentflow.ErrInvalidAmount
	}

	billingMonth := models.CurrentBillingMonth()
	now := time.Now()
	record := &models.PaymentRecord{
		RenterID:           rel.RenterID,
		OwnerID:            rel.OwnerID,
		RelationshipID:     rel.ID,
		BillingMonth:       billingMonth,
		Amount:             rel.MonthlyRent + electricBill,
		ElectricBillAmount: electricBill,
		Status:             models.PaymentStatusPaid,
		PaymentMethod:      models.PaymentMethodOwnerEntry,
		PaymentDate:        &now,
	}
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(models.PaymentMethodOwnerEntry, models.PaymentStatusPaid).Inc()

	_, err = s.rentStatus.Transition(ctx, ownerID, relationshipID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: billingMonth,
	})
	if err != nil && !errors.Is(err, models.ErrAlreadyPaid) {
		log.Printf("[Payment] Failed to mark rent paid for %s: %v", relationshipID, err)
	}

	cache.InvalidateRentCaches(ctx, rel.OwnerID, rel.ID)
	return record, nil
}

// ListPendingProofs returns proofs waiting on the owner.
func (s *PaymentService) ListPendingProofs(ctx context.Context, ownerID string) ([]*models.ManualPaymentProof, error) {
	return s.proofRepo.ListPendingForOwner(ctx, ownerID)
}

// History lists the payment records of a relationship for either party.
func (s *PaymentService) History(ctx context.Context, userID, relationshipID string) ([]*models.PaymentRecord, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}
	return s.paymentRepo.ListByRelationship(ctx, relationshipID)
}

// settle flips the payment row to paid and pushes the rent status to paid.
// An already-paid month is treated as settled, not as an error.
func (s *PaymentService) settle(ctx context.Context, renterID, ownerID, relationshipID, billingMonth, transactionID string) error {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return err
	}

	now := time.Now()
	record, err := s.paymentRepo.GetForMonth(ctx, renterID, ownerID, billingMonth)
	if err != nil {
		return err
	}
	if record == nil {
		record = &models.PaymentRecord{
			RenterID:       renterID,
			OwnerID:        ownerID,
			RelationshipID: relationshipID,
			BillingMonth:   billingMonth,
			Amount:         rel.MonthlyRent,
			PaymentMethod:  models.PaymentMethodUpiManual,
		}
	}
	record.Status = models.PaymentStatusPaid
	record.TransactionID = transactionID
	record.PaymentDate = &now
	if err := s.paymentRepo.Upsert(ctx, record); err != nil {
		return err
	}

	metrics.PaymentsTotal.WithLabelValues(record.PaymentMethod, models.PaymentStatusPaid).Inc()

	_, err = s.rentStatus.Transition(ctx, renterID, relationshipID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: billingMonth,
	})
	if err != nil && !errors.Is(err, models.ErrAlreadyPaid) {
		return err
	}

	cache.InvalidateRentCaches(ctx, ownerID, relationshipID)
	return nil
}

// prepare validates the renter's standing in the relationship and computes
// the payable total for the current month.
func (s *PaymentService) prepare(ctx context.Context, renterID, relationshipID string, electricBill float64) (*models.Relationship, float64, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, 0, err
	}
	if rel.RenterID != renterID {
		return nil, 0, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, 0, ErrRelationshipInactive
	}
	if rel.MonthlyRent <= 0 {
		return nil, 0, fmt.Errorf("monthly rent not set for this relationship")
	}
	if electricBill < 0 {
		return nil, 0, rentflow.ErrInvalidAmount
	}

	return rel, rel.MonthlyRent + electricBill, nil
}
