package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is an inventory-tracked item that addons reference. Stock
// deduction happens elsewhere; orders only read the unit price.
type Ingredient struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Unit          string          `gorm:"type:varchar(50)" json:"unit"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"unit_price"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"stock_quantity"`
	Thumbnail     *string         `gorm:"type:varchar(255)" json:"thumbnail"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
