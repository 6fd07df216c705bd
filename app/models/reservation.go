package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation is a table booking. UserID is nil for guest bookings made
// without a session.
type Reservation struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	FirstName   string         `gorm:"size:64;not null" json:"firstName"`
	LastName    string         `gorm:"size:64;not null" json:"lastName"`
	Email       string         `gorm:"size:255;not null" json:"email"`
	Phone       string         `gorm:"size:10;not null" json:"phone"`
	Date        string         `gorm:"size:32;not null" json:"date"`
	Time        string         `gorm:"size:32;not null" json:"time"`
	Address     string         `gorm:"size:512;not null" json:"address"`
	TableNumber int            `gorm:"not null" json:"tableNumber"`
	UserID      *uint          `gorm:"index" json:"userId,omitempty"`
}
