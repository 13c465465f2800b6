package rentflow

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livenzo-backend/internal/models"
)

func TestUpiIntentURL(t *testing.T) {
	d := UpiIntent{
		PayeeVPA:  "owner@oksbi",
		PayeeName: "Asha Verma",
		Amount:    12850,
		Note:      "Rent 2026-03",
	}

	raw := d.IntentURL()
	require.True(t, strings.HasPrefix(raw, "upi://pay?"))

	q, err := url.ParseQuery(strings.TrimPrefix(raw, "upi://pay?"))
	require.NoError(t, err)
	assert.Equal(t, "owner@oksbi", q.Get("pa"))
	assert.Equal(t, "Asha Verma", q.Get("pn"))
	assert.Equal(t, "12850.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Rent 2026-03", q.Get("tn"))
}

func TestUpiIntentURLOmitsEmptyNote(t *testing.T) {
	d := UpiIntent{PayeeVPA: "owner@oksbi", PayeeName: "Asha", Amount: 500}

	q, err := url.ParseQuery(strings.TrimPrefix(d.IntentURL(), "upi://pay?"))
	require.NoError(t, err)
	assert.False(t, q.Has("tn"))
}

func TestDestinationMethods(t *testing.T) {
	// Payment records store Method() verbatim, so the variants must agree
	// with the payment method enum.
	assert.Equal(t, models.PaymentMethodUpiManual, UpiIntent{}.Method())
	assert.Equal(t, models.PaymentMethodRazorpay, RazorpayCheckout{}.Method())
	assert.Equal(t, models.PaymentMethodUpiManual, ManualProof{}.Method())
}
