package services

import (
	"context"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/metrics"
)

// OrderService places and lists food orders.
type OrderService struct {
	orders *repositories.OrderRepository
}

// NewOrderService wires an OrderService.
func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// OrderInput is the validated order request. TotalAmount is client-supplied
// and stored as-is; it is not recomputed from the items.
type OrderInput struct {
	Items       []models.OrderItem
	TotalAmount float64
	Address     models.Address
}

// Place creates an order in Placed status for the user.
func (s *OrderService) Place(ctx context.Context, userID uint, in OrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("Order must contain at least one item")
	}
	if in.TotalAmount <= 0 {
		return nil, apperr.Validation("Invalid total amount")
	}

	o := &models.Order{
		UserID:      userID,
		Items:       in.Items,
		TotalAmount: in.TotalAmount,
		Address:     in.Address,
		Status:      models.StatusPlaced,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.WithLabelValues("order").Inc()
	return o, nil
}

// Mine lists the user's orders, newest first.
func (s *OrderService) Mine(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ByUser(ctx, userID)
}

// Clear deletes all of the user's orders and reports how many were removed.
func (s *OrderService) Clear(ctx context.Context, userID uint) (int64, error) {
	return s.orders.DeleteByUser(ctx, userID)
}
