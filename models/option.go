package models

import "time"

const (
	OptionTypeSingle   = "single"
	OptionTypeMultiple = "multiple"
)

// Option is a modifier group attached to one or more products, e.g.
// "Bread" with values White/Wheat. Single groups keep one selected value,
// multiple groups keep a set.
type Option struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Type      string        `gorm:"type:varchar(20);not null;default:'single'" json:"type"`
	Required  bool          `gorm:"not null;default:false" json:"required"`
	Values    []OptionValue `gorm:"foreignKey:OptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"values"`
	Products  []Product     `gorm:"many2many:product_options;" json:"-"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func ValidOptionType(t string) bool {
	return t == OptionTypeSingle || t == OptionTypeMultiple
}

// Satisfied reports whether the number of selected values meets the
// group's required flag.
func (o Option) Satisfied(selected int) bool {
	return !o.Required || selected > 0
}

// HasValue reports whether valueID belongs to this group.
func (o Option) HasValue(valueID uint) bool {
	for _, v := range o.Values {
		if v.ID == valueID {
			return true
		}
	}
	return false
}
