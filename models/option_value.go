package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionValue is one selectable choice inside a modifier group. The price
// increment may be negative (discount variants).
type OptionValue struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OptionID       uint            `gorm:"not null;index" json:"option_id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	PriceIncrement decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_increment"`
	DefaultOption  bool            `gorm:"not null;default:false" json:"default_option"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}
