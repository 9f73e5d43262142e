package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductAddon attaches an ingredient to a product as a quantity-selectable
// extra. Its unit price is the attach-time extra price plus the
// ingredient's own unit price.
type ProductAddon struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ProductID    uint            `gorm:"not null;index" json:"product_id"`
	IngredientID uint            `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"ingredient"`
	ExtraPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"extra_price"`
	MaxQuantity  *int            `json:"max_quantity,omitempty"`
	IsRequired   bool            `gorm:"not null;default:false" json:"is_required"`
	Order        int             `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// UnitPrice is the per-unit contribution of this addon to a line total.
// Requires Ingredient to be preloaded.
func (a ProductAddon) UnitPrice() decimal.Decimal {
	return a.ExtraPrice.Add(a.Ingredient.UnitPrice)
}

// MinQuantity is 1 for required addons, otherwise 0.
func (a ProductAddon) MinQuantity() int {
	if a.IsRequired {
		return 1
	}
	return 0
}

// ClampQuantity bounds q to [MinQuantity, MaxQuantity]. A nil MaxQuantity
// means unbounded.
func (a ProductAddon) ClampQuantity(q int) int {
	if min := a.MinQuantity(); q < min {
		return min
	}
	if a.MaxQuantity != nil && q > *a.MaxQuantity {
		return *a.MaxQuantity
	}
	return q
}
