package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

type Admin struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	AdminID        string         `gorm:"column:admin_id;unique;not null" json:"admin_id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Email          string         `gorm:"column:email;unique;not null" json:"email"`
	Password       string         `gorm:"column:password;not null" json:"-"`
	Role           string         `gorm:"column:role;not null;default:admin" json:"role"`
	ProfilePicture string         `gorm:"column:profile_picture;type:text" json:"profile_picture"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
