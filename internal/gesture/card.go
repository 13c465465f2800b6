package gesture

import (
	"time"

	"livenzo-backend/internal/models"
)

// DoubleTapWindow is how soon a second tap must land to count as a double tap.
const DoubleTapWindow = 300 * time.Millisecond

// TapAction is what a tap on a renter card opens.
type TapAction int

const (
	TapNone           TapAction = iota
	TapPhotoDetail              // single tap, only when meter photos exist
	TapMonthBreakdown           // double tap, regardless of photos
)

// CardState tracks one renter card's gesture lifecycle: the drag in progress,
// the in-flight transition guard, and the optimistic status override.
//
// Drag, tap and double-tap recognition are mutually exclusive: once a drag
// starts, taps are suppressed until the drag ends.
type CardState struct {
	status      models.RentStatusValue
	optimistic  models.RentStatusValue
	hasOverride bool

	dragging bool
	inFlight bool

	lastTap time.Time
	hasTap  bool
}

// NewCardState creates a card showing the given committed status.
func NewCardState(status models.RentStatusValue) *CardState {
	return &CardState{status: status}
}

// Displayed returns the status the card currently shows: the optimistic
// override while a transition is in flight, otherwise the committed status.
func (c *CardState) Displayed() models.RentStatusValue {
	if c.hasOverride {
		return c.optimistic
	}
	return c.status
}

// InFlight reports whether a transition round-trip is pending.
func (c *CardState) InFlight() bool { return c.inFlight }

// BeginDrag starts a drag. Returns false when the card is ignoring gestures
// because a transition is still in flight.
func (c *CardState) BeginDrag() bool {
	if c.inFlight {
		return false
	}
	c.dragging = true
	c.hasTap = false // an active drag cancels any pending tap
	return true
}

// Move returns the directional hint for the current drag offset.
func (c *CardState) Move(offsetPx float64) Direction {
	if !c.dragging {
		return DirectionNone
	}
	return Hint(offsetPx)
}

// EndDrag finishes the drag and returns the transition intent, if any.
// When an intent fires the card enters the in-flight state and shows the
// target status optimistically until Resolve is called.
func (c *CardState) EndDrag(offsetPx, velocityPxPerS float64) Intent {
	if !c.dragging {
		return IntentNone
	}
	c.dragging = false

	intent := Release(offsetPx, velocityPxPerS)
	if intent == IntentNone {
		return IntentNone
	}

	c.inFlight = true
	c.hasOverride = true
	if intent == IntentMarkPaid {
		c.optimistic = models.RentStatusPaid
	} else {
		c.optimistic = models.RentStatusUnpaid
	}
	return intent
}

// Resolve settles the in-flight transition. On success the optimistic status
// becomes committed; on failure the override is dropped and the card shows
// the pre-swipe status again. The user may retry immediately.
func (c *CardState) Resolve(err error) {
	if !c.inFlight {
		return
	}
	c.inFlight = false
	if err == nil {
		c.status = c.optimistic
	}
	c.hasOverride = false
}

// Tap handles a tap at the given time. A second tap within DoubleTapWindow is
// a double tap opening the per-month breakdown; a lone tap opens the photo
// detail view only when meter photos exist. Taps during a drag or an
// in-flight transition do nothing.
func (c *CardState) Tap(now time.Time, hasMeterPhotos bool) TapAction {
	if c.dragging || c.inFlight {
		return TapNone
	}

	if c.hasTap && now.Sub(c.lastTap) <= DoubleTapWindow {
		c.hasTap = false
		return TapMonthBreakdown
	}

	c.hasTap = true
	c.lastTap = now

	if hasMeterPhotos {
		return TapPhotoDetail
	}
	return TapNone
}
