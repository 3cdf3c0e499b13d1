package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CartItem is one line of a user's shopping cart, stored as a jsonb
// document on the user row.
type CartItem struct {
	ProductID    string `json:"product_id"`
	SelectedSize int    `json:"selected_size"`
	Quantity     int    `json:"quantity"`
}

type User struct {
	ID             uint                          `gorm:"primaryKey" json:"-"`
	UserID         string                        `gorm:"column:user_id;unique;not null" json:"user_id"`
	Name           string                        `gorm:"column:name;not null" json:"name"`
	Email          string                        `gorm:"column:email;unique;not null" json:"email"`
	PhoneNum       string                        `gorm:"column:phone_num" json:"phone_num"`
	Password       string                        `gorm:"column:password;not null" json:"-"`
	Address        string                        `gorm:"column:address;type:text" json:"address"`
	ProfilePicture string                        `gorm:"column:profile_picture;type:text" json:"profile_picture"`
	Cart           datatypes.JSONSlice[CartItem] `gorm:"column:cart_data" json:"cart_data"`
	CreatedAt      time.Time                     `json:"created_at"`
	UpdatedAt      time.Time                     `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
