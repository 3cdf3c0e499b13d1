package domain

import "time"

// ResetPin is a short-lived PIN emailed to a user for password recovery.
type ResetPin struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"column:email;not null;index" json:"email"`
	Pin       string    `gorm:"column:pin;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (ResetPin) TableName() string {
	return "reset_pins"
}
