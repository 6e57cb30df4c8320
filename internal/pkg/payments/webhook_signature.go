package payments

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// PaystackSignatureHeader carries the hex-encoded HMAC-SHA512 digest of the
// raw request body, computed by Paystack with the shared secret key.
const PaystackSignatureHeader = "x-paystack-signature"

// VerifyPaystackWebhookSignature checks the webhook signature against the raw
// request body. The digest must be computed over the exact bytes received;
// re-serializing the parsed payload before verifying would break it.
func VerifyPaystackWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}
