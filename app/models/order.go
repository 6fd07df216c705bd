package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status lifecycle. Orders placed directly start at Placed; orders
// created through payment verification or confirmed by webhook are Paid.
const (
	StatusPlaced         = "Placed"
	StatusConfirmed      = "Confirmed"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
	StatusPaid           = "Paid"
)

// OrderItem is one cart line. Price is the unit price in rupees as sent by
// the client.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Order is a food order. RazorpayOrderID is a pointer so unpaid orders store
// NULL and the unique index only constrains gateway-backed orders.
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	UserID            uint           `gorm:"not null;index" json:"userId"`
	Items             []OrderItem    `gorm:"serializer:json" json:"items"`
	TotalAmount       float64        `gorm:"not null" json:"totalAmount"`
	Address           Address        `gorm:"serializer:json" json:"address"`
	Status            string         `gorm:"size:32;not null;default:Placed" json:"status"`
	RazorpayOrderID   *string        `gorm:"size:64;uniqueIndex" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string         `gorm:"size:64" json:"razorpayPaymentId,omitempty"`
}
