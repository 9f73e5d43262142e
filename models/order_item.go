package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen snapshot of one cart line. Product name and unit
// price are denormalized because catalog rows may change after the order
// is placed; the snapshot is what was charged.
type OrderItem struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	OrderID     uint              `gorm:"not null;index" json:"order_id"`
	Order       Order             `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID   uint              `gorm:"not null" json:"product_id"`
	Product     Product           `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	ProductName string            `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Note        string            `gorm:"type:text" json:"note"`
	Options     []OrderItemOption `gorm:"foreignKey:OrderItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"order_options"`
	Addons      []OrderItemAddon  `gorm:"foreignKey:OrderItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"order_addons"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}
