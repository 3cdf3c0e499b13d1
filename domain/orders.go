package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses. The allowed transitions are enforced in business/orders.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusReceived   = "received"
	StatusCancelled  = "cancelled"
)

// HonoredStatuses are the statuses that count as real purchases for the
// recommendation profile. Cancelled orders are excluded.
var HonoredStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusReceived,
}

// OrderItem is an immutable snapshot of a product at purchase time. It is
// embedded in the order as a jsonb document and never updated afterwards,
// so historical orders keep their pricing and attributes even when the
// catalog item changes or disappears.
type OrderItem struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Price        float64  `json:"price"`
	Quantity     int      `json:"quantity"`
	SelectedSize int      `json:"selected_size"`
	Brand        string   `json:"brand"`
	ShoeType     string   `json:"shoe_type"`
	Gender       string   `json:"gender"`
	Subprice     float64  `json:"subprice"`
}

// StockDecrement is one conditional stock deduction applied atomically
// with order creation.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

type Order struct {
	ID            uint                           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string                         `gorm:"column:order_id;unique;not null" json:"order_id"`
	UserID        string                         `gorm:"column:user_id;not null;index" json:"user_id"`
	Name          string                         `gorm:"column:name;type:text" json:"name"`
	Email         string                         `gorm:"column:email;type:text" json:"email"`
	PhoneNum      string                         `gorm:"column:phone_num;type:text" json:"phone_num"`
	Address       string                         `gorm:"column:address;type:text" json:"address"`
	Items         datatypes.JSONSlice[OrderItem] `gorm:"column:line_items" json:"items"`
	TotalPrice    float64                        `gorm:"column:total_price;type:numeric" json:"total_price"`
	Status        string                         `gorm:"column:status;not null;default:pending" json:"status"`
	PaymentMethod string                         `gorm:"column:payment_method;type:text" json:"payment_method"`
	PaymentRef    string                         `gorm:"column:payment_ref;type:text" json:"payment_ref"`
	CreatedAt     time.Time                      `json:"created_at"`
	UpdatedAt     time.Time                      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
