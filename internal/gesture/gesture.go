// Package gesture maps horizontal drag gestures on a renter card to
// rent-status transition intents.
package gesture

import "livenzo-backend/internal/models"

// Thresholds in pixels / pixels-per-second. A directional hint appears past
// HintThreshold; releasing past ReleaseDistance, or flicking faster than
// ReleaseVelocity, commits the intent.
const (
	HintThresholdPx   = 50.0
	ReleaseDistancePx = 100.0
	ReleaseVelocity   = 500.0
)

// Direction of a drag hint.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft           // candidate "unpaid"
	DirectionRight          // candidate "paid"
)

// Intent is the transition a completed gesture asks for.
type Intent int

const (
	IntentNone Intent = iota
	IntentMarkPaid
	IntentMarkUnpaid
)

// Action converts an intent to the transition action it requests.
func (i Intent) Action() (models.TransitionAction, bool) {
	switch i {
	case IntentMarkPaid:
		return models.ActionMarkPaid, true
	case IntentMarkUnpaid:
		return models.ActionMarkUnpaid, true
	default:
		return "", false
	}
}

// Hint returns the directional hint to show while dragging. Below the hint
// threshold no hint is shown.
func Hint(offsetPx float64) Direction {
	switch {
	case offsetPx > HintThresholdPx:
		return DirectionRight
	case offsetPx < -HintThresholdPx:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

// Release interprets a finished drag. The intent fires when the absolute
// offset exceeds the distance threshold or the absolute release velocity
// exceeds the velocity threshold; direction decides paid (right) vs unpaid
// (left). Anything below both thresholds springs back with no intent.
func Release(offsetPx, velocityPxPerS float64) Intent {
	triggered := abs(offsetPx) > ReleaseDistancePx || abs(velocityPxPerS) > ReleaseVelocity

	if !triggered {
		return IntentNone
	}

	// Direction comes from the offset when it moved at all, otherwise from
	// the flick velocity.
	d := offsetPx
	if d == 0 {
		d = velocityPxPerS
	}
	if d > 0 {
		return IntentMarkPaid
	}
	return IntentMarkUnpaid
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
