package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/logger"
	"github.com/shashiranjanraj/zaika/pkg/metrics"
	"github.com/shashiranjanraj/zaika/pkg/payment"
	"gorm.io/gorm"
)

// PaymentService drives the gateway flow: intent creation, client-side
// verification, and webhook confirmation.
type PaymentService struct {
	orders        *repositories.OrderRepository
	gateway       payment.Client
	keySecret     string
	webhookSecret string
}

// NewPaymentService wires a PaymentService. gateway may be nil when the
// gateway keys are not configured; CreateIntent then fails with a 500.
func NewPaymentService(orders *repositories.OrderRepository, gateway payment.Client, keySecret, webhookSecret string) *PaymentService {
	return &PaymentService{
		orders:        orders,
		gateway:       gateway,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// CreateIntent creates a gateway payment-intent for the rupee amount. The
// gateway works in paise, so the amount is multiplied by 100.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (payment.Order, error) {
	if amount <= 0 {
		return payment.Order{}, apperr.Validation("Invalid amount provided for order.")
	}
	if s.gateway == nil {
		return payment.Order{}, apperr.Server("Server configuration error: Razorpay API keys missing.")
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, int64(amount*100), "INR", receipt)
	if err != nil {
		logger.Error("payment: intent creation failed", "error", err)
		return payment.Order{}, apperr.Server("Failed to create Razorpay order.")
	}
	return order, nil
}

// VerifyInput is the client-submitted verification payload plus the order
// details to persist on success.
type VerifyInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
	Items             []models.OrderItem
	TotalAmount       float64
	Address           models.Address
}

// Verify checks the client-submitted signature and, on success, records the
// order as Paid. Replays of the same gateway order return the existing
// order instead of creating a duplicate.
func (s *PaymentService) Verify(ctx context.Context, userID uint, in VerifyInput) (*models.Order, error) {
	if s.keySecret == "" {
		return nil, apperr.Server("Server configuration error: Razorpay secret missing.")
	}

	if !payment.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature, s.keySecret) {
		metrics.PaymentVerifications.WithLabelValues("signature_mismatch").Inc()
		return nil, apperr.Validation("Payment verification failed: Signature mismatch.")
	}

	if len(in.Items) == 0 || in.TotalAmount <= 0 || in.Address == (models.Address{}) {
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		return nil, apperr.Validation("Missing order details for creation.")
	}

	rzpOrderID := in.RazorpayOrderID
	o := &models.Order{
		UserID:            userID,
		Items:             in.Items,
		TotalAmount:       in.TotalAmount,
		Address:           in.Address,
		Status:            models.StatusPaid,
		RazorpayOrderID:   &rzpOrderID,
		RazorpayPaymentID: in.RazorpayPaymentID,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.orders.FindByRazorpayOrderID(ctx, rzpOrderID)
			if ferr != nil {
				return nil, ferr
			}
			metrics.PaymentVerifications.WithLabelValues("ok").Inc()
			return existing, nil
		}
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.PaymentVerifications.WithLabelValues("ok").Inc()
	metrics.OrdersPlaced.WithLabelValues("payment").Inc()
	return o, nil
}

// WebhookEvent is the decoded subset of the gateway's webhook payload.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook authenticates the raw webhook body against the webhook
// secret and applies payment.captured events. Unknown events are
// acknowledged without action so the gateway stops retrying them.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string, event WebhookEvent) (string, error) {
	if s.webhookSecret == "" {
		return "", apperr.Server("Webhook secret not configured on server.")
	}

	if !payment.VerifyWebhookSignature(body, signature, s.webhookSecret) {
		metrics.WebhookEvents.WithLabelValues(event.Event, "bad_signature").Inc()
		return "", apperr.Validation("Invalid webhook signature.")
	}

	if event.Event != "payment.captured" {
		metrics.WebhookEvents.WithLabelValues(event.Event, "ignored").Inc()
		return "Webhook received and processed.", nil
	}

	entity := event.Payload.Payment.Entity
	updated, err := s.orders.MarkPaidByRazorpayOrderID(ctx, entity.OrderID, entity.ID)
	if err != nil {
		return "", err
	}
	if updated == 0 {
		// The client-verify path may not have stored the order yet. The
		// gateway retries delivery, so log and acknowledge.
		logger.Warn("payment: webhook for unknown order",
			"razorpay_order_id", entity.OrderID,
			"razorpay_payment_id", entity.ID)
		metrics.WebhookEvents.WithLabelValues(event.Event, "unknown_order").Inc()
		return "Webhook received and processed.", nil
	}

	metrics.WebhookEvents.WithLabelValues(event.Event, "processed").Inc()
	return "Webhook received and processed.", nil
}
