package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livenzo-backend/internal/models"
)

type fakeStatusStore struct {
	rows    map[string]*models.RentStatus // keyed relationshipID|billingMonth
	upserts int
	getErr  error
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{rows: make(map[string]*models.RentStatus)}
}

func (f *fakeStatusStore) key(relID, month string) string { return relID + "|" + month }

func (f *fakeStatusStore) Get(_ context.Context, relID, month string) (*models.RentStatus, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	rs, ok := f.rows[f.key(relID, month)]
	if !ok {
		return nil, nil
	}
	copied := *rs
	return &copied, nil
}

func (f *fakeStatusStore) Upsert(_ context.Context, rs *models.RentStatus) error {
	f.upserts++
	copied := *rs
	f.rows[f.key(rs.RelationshipID, rs.BillingMonth)] = &copied
	return nil
}

func (f *fakeStatusStore) History(_ context.Context, relID string) ([]*models.RentStatus, error) {
	var out []*models.RentStatus
	for _, rs := range f.rows {
		if rs.RelationshipID == relID {
			copied := *rs
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeRelStore struct {
	rel  *models.Relationship
	rent float64
}

func (f *fakeRelStore) Get(_ context.Context, id string) (*models.Relationship, error) {
	if f.rel == nil || f.rel.ID != id {
		return nil, errors.New("relationship not found")
	}
	copied := *f.rel
	return &copied, nil
}

func (f *fakeRelStore) UpdateMonthlyRent(_ context.Context, _ string, amount float64) error {
	f.rent = amount
	return nil
}

type sentNotification struct {
	RecipientID string
	Type        string
	Data        map[string]string
}

type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID, notifType, _, _ string, data map[string]string) error {
	f.sent = append(f.sent, sentNotification{RecipientID: recipientID, Type: notifType, Data: data})
	return f.err
}

const (
	testOwnerID  = "owner-1"
	testRenterID = "renter-1"
	testRelID    = "rel-1"
	testMonth    = "2026-03"
)

func testFixture() (*RentStatusService, *fakeStatusStore, *fakeRelStore, *fakeNotifier) {
	statusStore := newFakeStatusStore()
	relStore := &fakeRelStore{rel: &models.Relationship{
		ID:          testRelID,
		OwnerID:     testOwnerID,
		RenterID:    testRenterID,
		Status:      models.RelationshipAccepted,
		MonthlyRent: 12000,
	}}
	notifier := &fakeNotifier{}
	return NewRentStatusService(statusStore, relStore, notifier), statusStore, relStore, notifier
}

func TestCurrentDefaultsToPending(t *testing.T) {
	svc, statusStore, _, _ := testFixture()

	rs, err := svc.Current(context.Background(), testRelID, testMonth)
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusPending, rs.Status)
	assert.Equal(t, 12000.0, rs.CurrentAmount)

	// Reading never creates a row.
	assert.Zero(t, statusStore.upserts)
}

func TestTransitionMarkPaid(t *testing.T) {
	svc, statusStore, _, notifier := testFixture()

	rs, err := svc.Transition(context.Background(), testRenterID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusPaid, rs.Status)
	assert.Equal(t, 1, statusStore.upserts)

	// The renter paid, so the owner hears about it.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, testOwnerID, notifier.sent[0].RecipientID)
	assert.Equal(t, models.NotificationRentPaid, notifier.sent[0].Type)
}

func TestTransitionMarkUnpaidNotifiesRenter(t *testing.T) {
	svc, _, _, notifier := testFixture()

	rs, err := svc.Transition(context.Background(), testOwnerID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkUnpaid,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusUnpaid, rs.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, testRenterID, notifier.sent[0].RecipientID)
	assert.Equal(t, models.NotificationRentReminder, notifier.sent[0].Type)
	assert.Equal(t, testMonth, notifier.sent[0].Data["billing_month"])
}

func TestTransitionRejectedPersistsNothing(t *testing.T) {
	svc, statusStore, _, notifier := testFixture()

	_, err := svc.Transition(context.Background(), testRenterID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	upsertsAfterPaid := statusStore.upserts

	// Paid is terminal; the repeat attempt must not write or notify.
	_, err = svc.Transition(context.Background(), testOwnerID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkUnpaid,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, models.ErrAlreadyPaid)
	assert.Equal(t, upsertsAfterPaid, statusStore.upserts)
	assert.Len(t, notifier.sent, 1)

	rs, err := svc.Current(context.Background(), testRelID, testMonth)
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusPaid, rs.Status)
}

func TestTransitionRenterCannotMarkUnpaid(t *testing.T) {
	svc, statusStore, _, _ := testFixture()

	_, err := svc.Transition(context.Background(), testRenterID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkUnpaid,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Zero(t, statusStore.upserts)
}

func TestTransitionStrangerRejected(t *testing.T) {
	svc, _, _, _ := testFixture()

	_, err := svc.Transition(context.Background(), "someone-else", testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestTransitionRequiresAcceptedRelationship(t *testing.T) {
	svc, _, relStore, _ := testFixture()
	relStore.rel.Status = models.RelationshipEnded

	_, err := svc.Transition(context.Background(), testOwnerID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkUnpaid,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, ErrRelationshipInactive)
}

func TestTransitionSurvivesNotifierFailure(t *testing.T) {
	svc, _, _, notifier := testFixture()
	notifier.err = errors.New("fcm unreachable")

	rs, err := svc.Transition(context.Background(), testOwnerID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkUnpaid,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusUnpaid, rs.Status)
}

func TestSwipeBelowThresholdsWritesNothing(t *testing.T) {
	svc, statusStore, _, _ := testFixture()

	res, err := svc.Swipe(context.Background(), testOwnerID, testRelID, &models.SwipeRequest{
		OffsetPx:       80,
		VelocityPxPerS: 200,
		BillingMonth:   testMonth,
	})
	require.NoError(t, err)
	assert.False(t, res.Triggered)
	assert.Equal(t, models.RentStatusPending, res.Status.Status)
	assert.Zero(t, statusStore.upserts)
}

func TestSwipeRightMarksPaid(t *testing.T) {
	svc, _, _, _ := testFixture()

	res, err := svc.Swipe(context.Background(), testOwnerID, testRelID, &models.SwipeRequest{
		OffsetPx:     150,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	assert.True(t, res.Triggered)
	assert.Equal(t, models.ActionMarkPaid, res.Action)
	assert.Equal(t, models.RentStatusPaid, res.Status.Status)
}

func TestSwipeLeftMarksUnpaid(t *testing.T) {
	svc, _, _, _ := testFixture()

	res, err := svc.Swipe(context.Background(), testOwnerID, testRelID, &models.SwipeRequest{
		OffsetPx:       -40,
		VelocityPxPerS: -700,
		BillingMonth:   testMonth,
	})
	require.NoError(t, err)
	assert.True(t, res.Triggered)
	assert.Equal(t, models.ActionMarkUnpaid, res.Action)
	assert.Equal(t, models.RentStatusUnpaid, res.Status.Status)
}

func TestSwipeOwnerOnly(t *testing.T) {
	svc, _, _, _ := testFixture()

	_, err := svc.Swipe(context.Background(), testRenterID, testRelID, &models.SwipeRequest{
		OffsetPx:     150,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSetMonthlyRentKeepsPaidMonthPaid(t *testing.T) {
	svc, _, relStore, _ := testFixture()

	_, err := svc.Transition(context.Background(), testRenterID, testRelID, &models.TransitionRequest{
		Action:       models.ActionMarkPaid,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)

	rs, err := svc.SetMonthlyRent(context.Background(), testOwnerID, testRelID, &models.SetMonthlyRentRequest{
		Amount:       13000,
		BillingMonth: testMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RentStatusPaid, rs.Status)
	assert.Equal(t, 13000.0, rs.CurrentAmount)
	assert.Equal(t, 13000.0, relStore.rent)
}

func TestSetMonthlyRentOwnerOnly(t *testing.T) {
	svc, _, _, _ := testFixture()

	_, err := svc.SetMonthlyRent(context.Background(), testRenterID, testRelID, &models.SetMonthlyRentRequest{
		Amount:       13000,
		BillingMonth: testMonth,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
