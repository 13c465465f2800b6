package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signRazorpay(secret, message string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewRazorpayService("key_id", "key_secret", "", nil, nil, nil, nil)

	orderID := "order_Nxyz123"
	paymentID := "pay_Nabc456"
	good := signRazorpay("key_secret", orderID+"|"+paymentID)

	assert.True(t, svc.verifySignature(orderID, paymentID, good))
	assert.False(t, svc.verifySignature(orderID, paymentID, "deadbeef"))
	assert.False(t, svc.verifySignature(orderID, "pay_other", good))
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	svc := NewRazorpayService("key_id", "", "", nil, nil, nil, nil)
	assert.False(t, svc.verifySignature("order_x", "pay_y", ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewRazorpayService("key_id", "key_secret", "whsec", nil, nil, nil, nil)

	body := []byte(`{"event":"payment.captured"}`)
	assert.True(t, svc.VerifyWebhookSignature(body, signRazorpay("whsec", string(body))))
	assert.False(t, svc.VerifyWebhookSignature(body, "bogus"))

	// Verification is skipped when no webhook secret is configured.
	open := NewRazorpayService("key_id", "key_secret", "", nil, nil, nil, nil)
	assert.True(t, open.VerifyWebhookSignature(body, "anything"))
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, NewRazorpayService("id", "secret", "", nil, nil, nil, nil).IsEnabled())
	assert.False(t, NewRazorpayService("", "", "", nil, nil, nil, nil).IsEnabled())
}

func TestWebhookEntity(t *testing.T) {
	payload := map[string]interface{}{
		"payment": map[string]interface{}{
			"entity": map[string]interface{}{
				"id":       "pay_1",
				"order_id": "order_1",
			},
		},
	}

	entity := webhookEntity(payload)
	assert.Equal(t, "pay_1", entity["id"])
	assert.Equal(t, "order_1", entity["order_id"])

	// A bare entity map passes through unchanged.
	flat := map[string]interface{}{"id": "pay_2"}
	assert.Equal(t, "pay_2", webhookEntity(flat)["id"])
}
