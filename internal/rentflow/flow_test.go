package rentflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowHappyPath(t *testing.T) {
	f := New()
	assert.Equal(t, StepIdle, f.Step())

	require.NoError(t, f.Start(12000))
	assert.Equal(t, StepMeter, f.Step())

	require.NoError(t, f.CompleteMeter())
	assert.Equal(t, StepBill, f.Step())

	require.NoError(t, f.EnterBill("850"))
	assert.Equal(t, StepDestination, f.Step())
	assert.Equal(t, 850.0, f.Electricity())
	assert.Equal(t, 12850.0, f.Total())
}

func TestFlowStartOnlyFromIdle(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(12000))

	assert.ErrorIs(t, f.Start(12000), ErrNotIdle)

	require.NoError(t, f.CompleteMeter())
	assert.ErrorIs(t, f.Start(12000), ErrNotIdle)
}

func TestFlowMeterLatch(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(12000))
	require.NoError(t, f.CompleteMeter())

	// A duplicate completion event must not advance or error silently.
	assert.Error(t, f.CompleteMeter())
	assert.Equal(t, StepBill, f.Step())
}

func TestFlowStepsGateEachOther(t *testing.T) {
	f := New()

	assert.ErrorIs(t, f.CompleteMeter(), ErrWrongStep)
	assert.ErrorIs(t, f.EnterBill("100"), ErrWrongStep)

	require.NoError(t, f.Start(9000))
	assert.ErrorIs(t, f.EnterBill("100"), ErrWrongStep)
}

func TestFlowEmptyBillMeansZero(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	require.NoError(t, f.CompleteMeter())

	require.NoError(t, f.EnterBill(""))
	assert.Equal(t, 0.0, f.Electricity())
	assert.Equal(t, 9000.0, f.Total())
}

func TestFlowRejectsBadBillInput(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	require.NoError(t, f.CompleteMeter())

	assert.ErrorIs(t, f.EnterBill("-50"), ErrInvalidAmount)
	assert.ErrorIs(t, f.EnterBill("eight hundred"), ErrInvalidAmount)

	// Rejected input leaves the flow on the bill step with no total.
	assert.Equal(t, StepBill, f.Step())
	assert.Equal(t, 0.0, f.Total())

	require.NoError(t, f.EnterBill("800"))
	assert.Equal(t, 9800.0, f.Total())
}

func TestFlowCancelDiscardsEverything(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	require.NoError(t, f.CompleteMeter())
	require.NoError(t, f.EnterBill("500"))

	f.Cancel()
	assert.Equal(t, StepIdle, f.Step())
	assert.Equal(t, 0.0, f.Total())
	assert.Equal(t, 0.0, f.Electricity())

	// A fresh flow starts from scratch.
	require.NoError(t, f.Start(9000))
	assert.Equal(t, StepMeter, f.Step())
}

func TestFlowFailReturnsToIdle(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	require.NoError(t, f.CompleteMeter())
	require.NoError(t, f.EnterBill("500"))

	f.Fail()
	assert.Equal(t, StepIdle, f.Step())
}

func TestFlowRetryDestination(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	require.NoError(t, f.CompleteMeter())
	require.NoError(t, f.EnterBill("500"))
	f.Fail()

	// Try Again re-enters at the destination step with the same totals.
	require.NoError(t, f.RetryDestination(9000, 500))
	assert.Equal(t, StepDestination, f.Step())
	assert.Equal(t, 9500.0, f.Total())

	// Meter and bill are not repeated.
	assert.ErrorIs(t, f.CompleteMeter(), ErrWrongStep)
	assert.ErrorIs(t, f.EnterBill("500"), ErrWrongStep)
}

func TestFlowRetryOnlyFromIdle(t *testing.T) {
	f := New()
	require.NoError(t, f.Start(9000))
	assert.ErrorIs(t, f.RetryDestination(9000, 500), ErrNotIdle)
}
