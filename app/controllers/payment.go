package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/bind"
	"github.com/shashiranjanraj/zaika/pkg/response"
)

// WebhookSignatureHeader carries the gateway's HMAC over the raw body.
const WebhookSignatureHeader = "X-Razorpay-Signature"

// PaymentController serves the /payment routes. These routes are mounted
// without the auth gate: intent creation and verification happen before or
// outside a session in the original flow, and webhooks are called by the
// gateway itself.
type PaymentController struct {
	svc *services.PaymentService
}

// NewPaymentController wires a PaymentController.
func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

type createOrderRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreateOrder handles POST /payment/order.
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := bind.JSON(r, &req); err != nil {
		// Preserve the exact message for a bad amount.
		response.Error(w, apperr.Validation("Invalid amount provided for order."))
		return
	}

	order, err := c.svc.CreateIntent(r.Context(), req.Amount)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "", map[string]interface{}{"order": order})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string             `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string             `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string             `json:"razorpay_signature" validate:"required"`
	Items             []orderItemPayload `json:"items"`
	TotalAmount       float64            `json:"totalAmount"`
	Address           addressPayload     `json:"address"`
	UserID            uint               `json:"userId" validate:"required"`
}

// VerifyPayment handles POST /payment/verify.
func (c *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	items, msg := toOrderItems(req.Items)
	if msg != "" {
		response.Error(w, apperr.Validation("Missing order details for creation."))
		return
	}

	order, err := c.svc.Verify(r.Context(), req.UserID, services.VerifyInput{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
		Items:             items,
		TotalAmount:       req.TotalAmount,
		Address:           req.Address.model(),
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Payment verified and order created successfully", map[string]interface{}{
		"order": order,
	})
}

// Webhook handles POST /payment/webhook. The raw body is read before any
// decoding because the signature covers the exact bytes the gateway sent.
func (c *PaymentController) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.Error(w, apperr.Validation("Invalid webhook payload."))
		return
	}

	var event services.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.Error(w, apperr.Validation("Invalid webhook payload."))
		return
	}

	msg, err := c.svc.HandleWebhook(r.Context(), body, r.Header.Get(WebhookSignatureHeader), event)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, msg, nil)
}
