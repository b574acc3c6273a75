package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureVerifier recomputes gateway signatures from the shared secret.
type SignatureVerifier struct {
	secret        []byte
	webhookSecret []byte
}

func NewSignatureVerifier(secret, webhookSecret string) *SignatureVerifier {
	return &SignatureVerifier{
		secret:        []byte(secret),
		webhookSecret: []byte(webhookSecret),
	}
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID", the scheme the
// gateway uses to sign checkout callbacks.
func (v *SignatureVerifier) Sign(orderID, paymentID string) string {
	return hexHMAC(v.secret, []byte(orderID+"|"+paymentID))
}

// Verify compares a supplied checkout signature against the recomputed one.
// The comparison is the sole authority: exact equality, no prefix logic.
func (v *SignatureVerifier) Verify(orderID, paymentID, signature string) bool {
	expected := v.Sign(orderID, paymentID)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// SignWebhookBody produces the raw-body HMAC for a webhook payload. Used by
// tests; inbound deliveries carry the gateway's own signature.
func (v *SignatureVerifier) SignWebhookBody(body []byte) string {
	return hexHMAC(v.webhookSecret, body)
}

// VerifyWebhook checks the raw-body HMAC the gateway sends on webhook
// deliveries (X-Razorpay-Signature).
func (v *SignatureVerifier) VerifyWebhook(body []byte, signature string) bool {
	if len(v.webhookSecret) == 0 {
		return false
	}
	expected := hexHMAC(v.webhookSecret, body)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func hexHMAC(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
