package migrations

import (
	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_reservations_table", &CreateReservationsTable{})
	migration.Register("20260301000002_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: reservations --------

type CreateReservationsTable struct{}

func (m *CreateReservationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Reservation{})
}

func (m *CreateReservationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("reservations")
}

// -------- 0003: orders --------
//
// The unique index on razorpay_order_id is part of the model tags; it is the
// idempotency key for the verify/webhook dual path.

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}
