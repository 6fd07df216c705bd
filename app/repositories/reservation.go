package repositories

import (
	"context"

	"github.com/shashiranjanraj/zaika/app/models"
	"gorm.io/gorm"
)

// ReservationRepository persists table reservations.
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository builds a ReservationRepository on the given connection.
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts the reservation.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// ByUser returns the user's reservations, newest first.
func (r *ReservationRepository) ByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// All returns every reservation, newest first.
func (r *ReservationRepository) All(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// TakenTables returns the table numbers already booked for a date/time slot.
func (r *ReservationRepository) TakenTables(ctx context.Context, date, slot string) ([]int, error) {
	var taken []int
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("date = ? AND time = ?", date, slot).
		Pluck("table_number", &taken).Error
	return taken, err
}
