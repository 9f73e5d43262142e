package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemOption records one selected modifier value on an order item,
// with the group/value names and price delta resolved at submission time.
type OrderItemOption struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderItemID    uint            `gorm:"not null;index" json:"order_item_id"`
	OptionID       uint            `gorm:"not null" json:"option_id"`
	OptionValueID  uint            `gorm:"not null" json:"option_value_id"`
	OptionName     string          `gorm:"type:varchar(255);not null" json:"option_name"`
	ValueName      string          `gorm:"type:varchar(255);not null" json:"value_name"`
	PriceIncrement decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_increment"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}
