package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. During cart building products are read-only
// input; order items snapshot the price at submission time.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Thumbnail     *string         `gorm:"type:varchar(255)" json:"thumbnail"`
	Options       []Option        `gorm:"many2many:product_options;" json:"options,omitempty"`
	Addons        []ProductAddon  `gorm:"foreignKey:ProductID" json:"addons,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// OptionByID returns the attached modifier group with the given id.
func (p Product) OptionByID(optionID uint) (Option, bool) {
	for _, o := range p.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// AddonByID returns the attached addon with the given id.
func (p Product) AddonByID(addonID uint) (ProductAddon, bool) {
	for _, a := range p.Addons {
		if a.ID == addonID {
			return a, true
		}
	}
	return ProductAddon{}, false
}
