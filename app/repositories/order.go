package repositories

import (
	"context"

	"github.com/shashiranjanraj/zaika/app/models"
	"gorm.io/gorm"
)

// OrderRepository persists food orders.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds an OrderRepository on the given connection.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order. Returns gorm.ErrDuplicatedKey when an order with
// the same razorpay order id already exists.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// ByUser returns the user's orders, newest first.
func (r *OrderRepository) ByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// DeleteByUser removes all of the user's orders and returns how many were
// deleted.
func (r *OrderRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Order{})
	return tx.RowsAffected, tx.Error
}

// FindByRazorpayOrderID fetches the order tied to a gateway order id.
func (r *OrderRepository) FindByRazorpayOrderID(ctx context.Context, rzpOrderID string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", rzpOrderID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkPaidByRazorpayOrderID sets the order's status to Paid and records the
// gateway payment id. Returns the number of rows updated.
func (r *OrderRepository) MarkPaidByRazorpayOrderID(ctx context.Context, rzpOrderID, paymentID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("razorpay_order_id = ?", rzpOrderID).
		Updates(map[string]interface{}{
			"status":              models.StatusPaid,
			"razorpay_payment_id": paymentID,
		})
	return tx.RowsAffected, tx.Error
}
