package gesture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"livenzo-backend/internal/models"
)

func TestCardOptimisticCommit(t *testing.T) {
	card := NewCardState(models.RentStatusPending)

	assert.True(t, card.BeginDrag())
	assert.Equal(t, DirectionRight, card.Move(120))

	intent := card.EndDrag(120, 0)
	assert.Equal(t, IntentMarkPaid, intent)
	assert.True(t, card.InFlight())
	assert.Equal(t, models.RentStatusPaid, card.Displayed())

	card.Resolve(nil)
	assert.False(t, card.InFlight())
	assert.Equal(t, models.RentStatusPaid, card.Displayed())
}

func TestCardOptimisticRollback(t *testing.T) {
	card := NewCardState(models.RentStatusPending)

	card.BeginDrag()
	card.EndDrag(-150, 0)
	assert.Equal(t, models.RentStatusUnpaid, card.Displayed())

	card.Resolve(errors.New("server rejected"))
	assert.False(t, card.InFlight())
	assert.Equal(t, models.RentStatusPending, card.Displayed())

	// Retry is allowed immediately after a rollback.
	assert.True(t, card.BeginDrag())
}

func TestCardInFlightGuard(t *testing.T) {
	card := NewCardState(models.RentStatusPending)

	card.BeginDrag()
	card.EndDrag(150, 0)
	assert.True(t, card.InFlight())

	// A second gesture is ignored while the first is pending.
	assert.False(t, card.BeginDrag())
	assert.Equal(t, IntentNone, card.EndDrag(150, 0))
	assert.Equal(t, TapNone, card.Tap(time.Now(), true))
}

func TestCardSpringBackKeepsStatus(t *testing.T) {
	card := NewCardState(models.RentStatusUnpaid)

	card.BeginDrag()
	intent := card.EndDrag(90, 0)
	assert.Equal(t, IntentNone, intent)
	assert.False(t, card.InFlight())
	assert.Equal(t, models.RentStatusUnpaid, card.Displayed())
}

func TestCardTapRecognition(t *testing.T) {
	card := NewCardState(models.RentStatusPending)
	now := time.Now()

	// Single tap opens the photo detail only when photos exist.
	assert.Equal(t, TapPhotoDetail, card.Tap(now, true))

	// Second tap inside the window is a double tap.
	assert.Equal(t, TapMonthBreakdown, card.Tap(now.Add(200*time.Millisecond), true))

	// After the double tap the sequence starts over.
	assert.Equal(t, TapPhotoDetail, card.Tap(now.Add(time.Second), true))

	// Past the window it is a fresh single tap again.
	assert.Equal(t, TapPhotoDetail, card.Tap(now.Add(2*time.Second), true))
}

func TestCardTapWithoutPhotos(t *testing.T) {
	card := NewCardState(models.RentStatusPending)
	now := time.Now()

	assert.Equal(t, TapNone, card.Tap(now, false))
	// Double tap still opens the breakdown regardless of photos.
	assert.Equal(t, TapMonthBreakdown, card.Tap(now.Add(100*time.Millisecond), false))
}

func TestCardDragCancelsPendingTap(t *testing.T) {
	card := NewCardState(models.RentStatusPending)
	now := time.Now()

	card.Tap(now, true)
	card.BeginDrag()
	card.EndDrag(10, 0)

	// The earlier tap must not pair with this one into a double tap.
	assert.Equal(t, TapPhotoDetail, card.Tap(now.Add(150*time.Millisecond), true))
}
