package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/bind"
	"github.com/shashiranjanraj/zaika/pkg/middleware"
	"github.com/shashiranjanraj/zaika/pkg/response"
	"github.com/shashiranjanraj/zaika/pkg/validate"
)

// OrderController serves the /orders routes.
type OrderController struct {
	svc *services.OrderService
}

// NewOrderController wires an OrderController.
func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

type orderItemPayload struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
	Image    string  `json:"image" validate:"nullable"`
}

type placeOrderRequest struct {
	Items       []orderItemPayload `json:"items" validate:"required"`
	TotalAmount float64            `json:"totalAmount" validate:"required,gt=0"`
	Address     addressPayload     `json:"address" validate:"required"`
}

func toOrderItems(payload []orderItemPayload) ([]models.OrderItem, string) {
	items := make([]models.OrderItem, 0, len(payload))
	for _, p := range payload {
		if errs := validate.Struct(&p); validate.HasErrors(errs) {
			return nil, validate.Join(errs)
		}
		items = append(items, models.OrderItem{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Image:    p.Image,
		})
	}
	return items, ""
}

// Place handles POST /orders.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var req placeOrderRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if msg := validateAddress(req.Address); msg != "" {
		response.Error(w, apperr.Validation(msg))
		return
	}
	items, msg := toOrderItems(req.Items)
	if msg != "" {
		response.Error(w, apperr.Validation(msg))
		return
	}

	order, err := c.svc.Place(r.Context(), userID, services.OrderInput{
		Items:       items,
		TotalAmount: req.TotalAmount,
		Address:     req.Address.model(),
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "Order placed successfully", map[string]interface{}{
		"order": order,
	})
}

// Mine handles GET /orders/my.
func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	orders, err := c.svc.Mine(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "", map[string]interface{}{"orders": orders})
}

// Clear handles DELETE /orders/my. Zero deletions is still a success.
func (c *OrderController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	count, err := c.svc.Clear(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "Orders cleared", map[string]interface{}{
		"deletedCount": count,
	})
}
