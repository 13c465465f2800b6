package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current RentStatusValue
		action  TransitionAction
		wantErr error
	}{
		{"pending to paid", RentStatusPending, ActionMarkPaid, nil},
		{"unpaid to paid", RentStatusUnpaid, ActionMarkPaid, nil},
		{"pending to unpaid", RentStatusPending, ActionMarkUnpaid, nil},
		{"paid to paid", RentStatusPaid, ActionMarkPaid, ErrAlreadyPaid},
		{"paid to unpaid", RentStatusPaid, ActionMarkUnpaid, ErrAlreadyPaid},
		{"unpaid to unpaid", RentStatusUnpaid, ActionMarkUnpaid, ErrUnpaidNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.action)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTransitionUnknownAction(t *testing.T) {
	err := ValidateTransition(RentStatusPending, TransitionAction("archived"))
	assert.Error(t, err)
}

func TestPaidIsTerminal(t *testing.T) {
	// No action leads anywhere from paid.
	for _, action := range []TransitionAction{ActionMarkPaid, ActionMarkUnpaid} {
		assert.ErrorIs(t, ValidateTransition(RentStatusPaid, action), ErrAlreadyPaid)
	}
}

func TestParseBillingMonth(t *testing.T) {
	month, err := ParseBillingMonth("2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", month)

	_, err = ParseBillingMonth("March 2026")
	assert.Error(t, err)

	_, err = ParseBillingMonth("2026-13")
	assert.Error(t, err)

	_, err = ParseBillingMonth("")
	assert.Error(t, err)
}
