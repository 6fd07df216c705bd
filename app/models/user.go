package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a postal address stored as a JSON column on its owner.
type Address struct {
	HouseName string `json:"houseName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// User is an account holder. Password is always the bcrypt hash, never the
// plaintext, and never leaves the server.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Username  string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:32;not null;default:user" json:"role"`
	Avatar    string         `gorm:"size:512" json:"avatar,omitempty"`
	Address   *Address       `gorm:"serializer:json" json:"address,omitempty"`
}

// RoleAdmin grants access to the admin-only endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Redacted returns the public projection of the user: the shape every
// profile-bearing response carries.
func (u *User) Redacted() map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"address":  u.Address,
		"avatar":   u.Avatar,
	}
}
