package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/gesture"
	"livenzo-backend/internal/metrics"
	"livenzo-backend/internal/models"
)

var (
	ErrNotAuthorized        = errors.New("not a party to this relationship")
	ErrRelationshipInactive = errors.New("relationship is not accepted")
)

// StatusStore is the persistence surface the rent status logic needs.
type StatusStore interface {
	Get(ctx context.Context, relationshipID, billingMonth string) (*models.RentStatus, error)
	Upsert(ctx context.Context, rs *models.RentStatus) error
	History(ctx context.Context, relationshipID string) ([]*models.RentStatus, error)
}

// RelationshipStore resolves the relationship a transition is scoped to.
type RelationshipStore interface {
	Get(ctx context.Context, id string) (*models.Relationship, error)
	UpdateMonthlyRent(ctx context.Context, id string, amount float64) error
}

// Notifier dispatches a user notification. Implementations must not block the
// transition on push delivery.
type Notifier interface {
	Notify(ctx context.Context, recipientID, notifType, title, body string, data map[string]string) error
}

// RentStatusService owns the per-month payment state of every relationship.
type RentStatusService struct {
	statusStore StatusStore
	relStore    RelationshipStore
	notifier    Notifier
}

func NewRentStatusService(statusStore StatusStore, relStore RelationshipStore, notifier Notifier) *RentStatusService {
	return &RentStatusService{
		statusStore: statusStore,
		relStore:    relStore,
		notifier:    notifier,
	}
}

// Current returns the rent status for a billing month. A missing row reads as
// pending at the relationship's monthly rent; nothing is persisted until the
// first write.
func (s *RentStatusService) Current(ctx context.Context, relationshipID, billingMonth string) (*models.RentStatus, error) {
	rel, err := s.relStore.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}

	rs, err := s.statusStore.Get(ctx, relationshipID, billingMonth)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = defaultStatus(rel, billingMonth)
	}

	return rs, nil
}

// History lists every recorded billing month for a relationship.
func (s *RentStatusService) History(ctx context.Context, relationshipID string) ([]*models.RentStatus, error) {
	return s.statusStore.History(ctx, relationshipID)
}

// SetMonthlyRent records the owner's rent amount on the relationship and
// resets the month's status row to pending at the new amount.
func (s *RentStatusService) SetMonthlyRent(ctx context.Context, ownerID, relationshipID string, req *models.SetMonthlyRentRequest) (*models.RentStatus, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("rent amount must be positive")
	}

	rel, err := s.relStore.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}

	billingMonth := req.BillingMonth
	if billingMonth == "" {
		billingMonth = models.CurrentBillingMonth()
	} else if billingMonth, err = models.ParseBillingMonth(billingMonth); err != nil {
		return nil, err
	}

	if err := s.relStore.UpdateMonthlyRent(ctx, relationshipID, req.Amount); err != nil {
		return nil, err
	}

	existing, err := s.statusStore.Get(ctx, relationshipID, billingMonth)
	if err != nil {
		return nil, err
	}

	rs := &models.RentStatus{
		RelationshipID: relationshipID,
		BillingMonth:   billingMonth,
		Status:         models.RentStatusPending,
		CurrentAmount:  req.Amount,
		DueDate:        dueDate(billingMonth, req.DueDay),
	}
	// A month already marked paid stays paid; only the amount changes.
	if existing != nil && existing.Status == models.RentStatusPaid {
		rs.Status = models.RentStatusPaid
	}

	if err := s.statusStore.Upsert(ctx, rs); err != nil {
		return nil, err
	}

	cache.InvalidateRentCaches(ctx, rel.OwnerID, relationshipID)
	return rs, nil
}

// Transition applies a mark-paid or mark-unpaid action for the billing month.
// The validator gates every write: a rejected transition persists nothing and
// the rejection reason goes back to the caller verbatim.
func (s *RentStatusService) Transition(ctx context.Context, actorID, relationshipID string, req *models.TransitionRequest) (*models.RentStatus, error) {
	rel, err := s.relStore.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != actorID && rel.RenterID != actorID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}
	// Renters report their own payment; flagging unpaid is the owner's call.
	if req.Action == models.ActionMarkUnpaid && actorID != rel.OwnerID {
		return nil, ErrNotAuthorized
	}

	billingMonth := req.BillingMonth
	if billingMonth == "" {
		billingMonth = models.CurrentBillingMonth()
	} else if billingMonth, err = models.ParseBillingMonth(billingMonth); err != nil {
		return nil, err
	}

	rs, err := s.statusStore.Get(ctx, relationshipID, billingMonth)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = defaultStatus(rel, billingMonth)
	}

	if err := models.ValidateTransition(rs.Status, req.Action); err != nil {
		metrics.RentTransitionsTotal.WithLabelValues(string(req.Action), "rejected").Inc()
		return nil, err
	}

	rs.Status = models.RentStatusValue(req.Action)
	if err := s.statusStore.Upsert(ctx, rs); err != nil {
		return nil, err
	}

	metrics.RentTransitionsTotal.WithLabelValues(string(req.Action), "applied").Inc()
	cache.InvalidateRentCaches(ctx, rel.OwnerID, relationshipID)

	s.notifyTransition(ctx, rel, rs, actorID)
	return rs, nil
}

// Swipe interprets a released owner drag gesture and applies the transition it
// asks for. A release below both thresholds springs back without touching
// state.
func (s *RentStatusService) Swipe(ctx context.Context, ownerID, relationshipID string, req *models.SwipeRequest) (*models.SwipeResult, error) {
	rel, err := s.relStore.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}

	intent := gesture.Release(req.OffsetPx, req.VelocityPxPerS)
	action, ok := intent.Action()
	if !ok {
		billingMonth := req.BillingMonth
		if billingMonth == "" {
			billingMonth = models.CurrentBillingMonth()
		}
		rs, err := s.Current(ctx, relationshipID, billingMonth)
		if err != nil {
			return nil, err
		}
		return &models.SwipeResult{Triggered: false, Status: rs}, nil
	}

	rs, err := s.Transition(ctx, ownerID, relationshipID, &models.TransitionRequest{
		Action:       action,
		BillingMonth: req.BillingMonth,
	})
	if err != nil {
		return nil, err
	}

	return &models.SwipeResult{Triggered: true, Action: action, Status: rs}, nil
}

// notifyTransition fans out the post-transition notifications. Failures are
// logged and dropped; the transition already committed.
func (s *RentStatusService) notifyTransition(ctx context.Context, rel *models.Relationship, rs *models.RentStatus, actorID string) {
	data := map[string]string{
		"relationship_id": rel.ID,
		"billing_month":   rs.BillingMonth,
		"status":          string(rs.Status),
	}

	switch rs.Status {
	case models.RentStatusUnpaid:
		err := s.notifier.Notify(ctx, rel.RenterID, models.NotificationRentReminder,
			"Rent marked unpaid",
			fmt.Sprintf("Your rent for %s (₹%.2f) is marked unpaid. Please pay at the earliest.", rs.BillingMonth, rs.CurrentAmount),
			data)
		if err != nil {
			log.Printf("[RentStatus] Failed to notify renter %s: %v", rel.RenterID, err)
		}
	case models.RentStatusPaid:
		recipient := rel.OwnerID
		if actorID == rel.OwnerID {
			recipient = rel.RenterID
		}
		err := s.notifier.Notify(ctx, recipient, models.NotificationRentPaid,
			"Rent marked paid",
			fmt.Sprintf("Rent for %s (₹%.2f) has been marked paid.", rs.BillingMonth, rs.CurrentAmount),
			data)
		if err != nil {
			log.Printf("[RentStatus] Failed to notify %s: %v", recipient, err)
		}
	}
}

func defaultStatus(rel *models.Relationship, billingMonth string) *models.RentStatus {
	return &models.RentStatus{
		RelationshipID: rel.ID,
		BillingMonth:   billingMonth,
		Status:         models.RentStatusPending,
		CurrentAmount:  rel.MonthlyRent,
		DueDate:        dueDate(billingMonth, 0),
	}
}

// dueDate resolves the due day inside the billing month; day 5 by default.
func dueDate(billingMonth string, day int) time.Time {
	if day <= 0 || day > 28 {
		day = 5
	}
	t, err := time.Parse("2006-01", billingMonth)
	if err != nil {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}
