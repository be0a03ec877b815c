package models

import "time"

// GuestUser is an anonymous shopper; its ID doubles as the cart session key.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
}
