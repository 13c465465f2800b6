package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"livenzo-backend/internal/models"
)

func TestHint(t *testing.T) {
	assert.Equal(t, DirectionNone, Hint(0))
	assert.Equal(t, DirectionNone, Hint(50))
	assert.Equal(t, DirectionNone, Hint(-50))
	assert.Equal(t, DirectionRight, Hint(51))
	assert.Equal(t, DirectionLeft, Hint(-51))
}

func TestReleaseBelowThresholds(t *testing.T) {
	// 90px at rest crosses neither threshold.
	assert.Equal(t, IntentNone, Release(90, 0))
	assert.Equal(t, IntentNone, Release(-90, 0))
	assert.Equal(t, IntentNone, Release(100, 500))
	assert.Equal(t, IntentNone, Release(0, 0))
}

func TestReleaseByDistance(t *testing.T) {
	assert.Equal(t, IntentMarkPaid, Release(150, 0))
	assert.Equal(t, IntentMarkUnpaid, Release(-150, 0))
	assert.Equal(t, IntentMarkPaid, Release(101, 0))
}

func TestReleaseByVelocity(t *testing.T) {
	// A short but fast flick still triggers.
	assert.Equal(t, IntentMarkPaid, Release(40, 600))
	assert.Equal(t, IntentMarkUnpaid, Release(-40, -600))
}

func TestReleaseDirectionFromOffset(t *testing.T) {
	// Offset decides direction even when the velocity points the other way.
	assert.Equal(t, IntentMarkPaid, Release(120, -600))
	assert.Equal(t, IntentMarkUnpaid, Release(-120, 600))
}

func TestReleaseDirectionFromVelocityWhenNoOffset(t *testing.T) {
	assert.Equal(t, IntentMarkPaid, Release(0, 600))
	assert.Equal(t, IntentMarkUnpaid, Release(0, -600))
}

func TestIntentAction(t *testing.T) {
	action, ok := IntentMarkPaid.Action()
	assert.True(t, ok)
	assert.Equal(t, models.ActionMarkPaid, action)

	action, ok = IntentMarkUnpaid.Action()
	assert.True(t, ok)
	assert.Equal(t, models.ActionMarkUnpaid, action)

	_, ok = IntentNone.Action()
	assert.False(t, ok)
}
