package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemAddon records one addon selection on an order item. UnitPrice
// is the resolved extra price plus ingredient unit price at submission.
type OrderItemAddon struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderItemID    uint            `gorm:"not null;index" json:"order_item_id"`
	ProductAddonID uint            `gorm:"not null" json:"product_addon_id"`
	IngredientID   uint            `gorm:"not null" json:"ingredient_id"`
	IngredientName string          `gorm:"type:varchar(255);not null" json:"ingredient_name"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}
