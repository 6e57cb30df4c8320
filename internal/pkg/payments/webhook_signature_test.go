package payments

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaystackWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_secret"

	validSig := signPayload(payload, secret)

	if !VerifyPaystackWebhookSignature(payload, validSig, secret) {
		t.Fatalf("expected signature to validate")
	}
	if !VerifyPaystackWebhookSignature(payload, strings.ToUpper(validSig), secret) {
		t.Fatalf("expected uppercase hex signature to validate")
	}
	if !VerifyPaystackWebhookSignature(payload, "  "+validSig+"\n", secret) {
		t.Fatalf("expected surrounding whitespace to be ignored")
	}
	if VerifyPaystackWebhookSignature(payload, validSig, "other-secret") {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyPaystackWebhookSignature([]byte(`{"event":"tampered"}`), validSig, secret) {
		t.Fatalf("expected tampered payload to fail")
	}
	if VerifyPaystackWebhookSignature(payload, "deadbeef", secret) {
		t.Fatalf("expected truncated signature to fail")
	}
	if VerifyPaystackWebhookSignature(payload, "not-hex", secret) {
		t.Fatalf("expected non-hex signature to fail")
	}
	if VerifyPaystackWebhookSignature(payload, "", secret) {
		t.Fatalf("expected empty signature to fail")
	}
}

func TestVerifyPaystackWebhookSignature_EmptySecret(t *testing.T) {
	payload := []byte(`{}`)
	if VerifyPaystackWebhookSignature(payload, signPayload(payload, ""), "") {
		t.Fatalf("expected empty secret to reject all signatures")
	}
}
