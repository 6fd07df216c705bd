package payment_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/shashiranjanraj/zaika/pkg/payment"
)

const testSecret = "test_key_secret"

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	sig := sign(orderID+"|"+paymentID, testSecret)

	if !payment.VerifySignature(orderID, paymentID, sig, testSecret) {
		t.Error("expected correctly computed signature to verify")
	}
}

func TestVerifySignatureSingleCharMutation(t *testing.T) {
	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	sig := sign(orderID+"|"+paymentID, testSecret)

	// Flip one hex character anywhere in the signature.
	for i := 0; i < len(sig); i += 7 {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if payment.VerifySignature(orderID, paymentID, string(mutated), testSecret) {
			t.Errorf("mutated signature at index %d must not verify", i)
		}
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	sig := sign("order_1|pay_1", testSecret)
	if payment.VerifySignature("order_1", "pay_1", sig, "other_secret") {
		t.Error("signature must not verify under a different secret")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	sig := sign(string(body), "webhook_secret")

	if !payment.VerifyWebhookSignature(body, sig, "webhook_secret") {
		t.Error("expected webhook signature over raw body to verify")
	}

	// Any change to the body invalidates the signature.
	tampered := append([]byte(nil), body...)
	tampered[0] = ' '
	if payment.VerifyWebhookSignature(tampered, sig, "webhook_secret") {
		t.Error("tampered body must not verify")
	}
}

func TestVerifySignatureEmptyInputs(t *testing.T) {
	if payment.VerifySignature("", "", "", testSecret) {
		t.Error("empty signature must not verify")
	}
}
