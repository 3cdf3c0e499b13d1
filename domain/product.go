package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id      TEXT UNIQUE NOT NULL,
//     name            TEXT NOT NULL,
//     description     TEXT,
//     images          JSONB,
//     price           NUMERIC NOT NULL,
//     quantity        INT NOT NULL DEFAULT 0,
//     sizes           JSONB,
//     brand           TEXT,
//     shoe_type       TEXT,
//     gender          TEXT,
//     added_by        TEXT,
//     added_by_role   TEXT,
//     updated_by      TEXT,
//     updated_by_role TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ
// );

type Product struct {
	ID            uint                        `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID     string                      `gorm:"column:product_id;unique;not null" json:"product_id"`
	Name          string                      `gorm:"column:name;type:text;not null" json:"name"`
	Description   string                      `gorm:"column:description;type:text" json:"description"`
	Images        datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	Price         float64                     `gorm:"column:price;type:numeric" json:"price"`
	Quantity      int                         `gorm:"column:quantity;default:0" json:"quantity"`
	Sizes         datatypes.JSONSlice[int]    `gorm:"column:sizes" json:"sizes"`
	Brand         string                      `gorm:"column:brand;type:text" json:"brand"`
	ShoeType      string                      `gorm:"column:shoe_type;type:text" json:"shoe_type"`
	Gender        string                      `gorm:"column:gender;type:text" json:"gender"`
	AddedBy       string                      `gorm:"column:added_by;type:text" json:"added_by"`
	AddedByRole   string                      `gorm:"column:added_by_role;type:text" json:"added_by_role"`
	UpdatedBy     string                      `gorm:"column:updated_by;type:text" json:"updated_by,omitempty"`
	UpdatedByRole string                      `gorm:"column:updated_by_role;type:text" json:"updated_by_role,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// IsSoldOut reports whether the product has no remaining stock.
func (p Product) IsSoldOut() bool {
	return p.Quantity == 0
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Gender   string
	Brand    string
	ShoeType string
	MinPrice float64
	MaxPrice float64
}
