// Package payment adapts the Razorpay gateway: remote order creation through
// the official SDK, and local HMAC-SHA256 signature checks for both the
// client-verify path and the webhook path. Signatures are verified here
// rather than through the SDK so the comparison is guaranteed constant-time.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the gateway payment-intent as returned to clients.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client creates payment-intents on the gateway. The concrete Razorpay
// implementation is swapped for a fake in tests.
type Client interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (Order, error)
}

// Razorpay is the production Client backed by the official SDK.
type Razorpay struct {
	client *razorpay.Client
}

// NewRazorpay builds a Client from the key id/secret pair.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder requests a payment-intent from the gateway.
func (r *Razorpay) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("payment: create order: %w", err)
	}

	return Order{
		ID:       str(body["id"]),
		Amount:   amountPaise,
		Currency: str(body["currency"]),
		Receipt:  str(body["receipt"]),
		Status:   str(body["status"]),
	}, nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

// VerifySignature checks the client-submitted signature: HMAC-SHA256 over
// "<orderID>|<paymentID>" with the key secret, hex-encoded.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	return hmacEqual([]byte(orderID+"|"+paymentID), signature, secret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header: HMAC-SHA256
// over the raw request body with the webhook secret, hex-encoded.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	return hmacEqual(body, signature, secret)
}

func hmacEqual(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	// hmac.Equal: signature comes from the network, keep the compare
	// constant-time.
	return hmac.Equal([]byte(expected), []byte(signature))
}
