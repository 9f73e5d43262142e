package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderTypeDineIn   = "dinein"
	OrderTypeDelivery = "delivery"
)

// Preparation statuses. Transitions between any two are allowed; terminal
// only means eligible for finishing.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses, tracked independently of preparation.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// Order is created from a cart submission and mutated only through the
// lifecycle transitions. TotalAmount is the contract price frozen at
// submission and never recomputed.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Type            string          `gorm:"type:varchar(20);not null;default:'dinein'" json:"type"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod   *string         `gorm:"type:varchar(50)" json:"payment_method"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_tax"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	Finished        bool            `gorm:"not null;default:false" json:"finished"`
	TableSessionID  *uint           `gorm:"index" json:"table_session_id,omitempty"`
	TableSession    *TableSession   `gorm:"foreignKey:TableSessionID" json:"table_session,omitempty"`
	DeliveryName    *string         `gorm:"type:varchar(255)" json:"delivery_name"`
	DeliveryAddress *string         `gorm:"type:varchar(255)" json:"delivery_address"`
	DeliveryPhone   *string         `gorm:"type:varchar(50)" json:"delivery_phone"`
	CollectedBy     *uint           `gorm:"index" json:"collected_by,omitempty"`
	CollectedAt     *time.Time      `json:"collected_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether preparation reached a state from which the
// order may be finished.
func (o Order) Terminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// Settled reports whether the order no longer blocks closing its table
// session: either cancelled or fully paid.
func (o Order) Settled() bool {
	return o.Status == OrderStatusCancelled || o.PaymentStatus == PaymentStatusPaid
}
