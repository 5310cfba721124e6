package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a checkout callback signature: HMAC-SHA256 over
// "<gatewayOrderID>|<paymentID>" keyed with the gateway secret, hex encoded.
// The comparison is constant-time; any difference fails closed.
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	expected := Sign(secret, gatewayOrderID+"|"+paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks a webhook callback: HMAC-SHA256 over the raw
// request body, hex encoded.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the hex HMAC-SHA256 of payload with secret. Exposed for
// tests and for tooling that simulates gateway callbacks.
func Sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
