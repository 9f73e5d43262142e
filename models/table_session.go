package models

import "time"

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// TableSession is one open tab grouping the dine-in orders of a physical
// table. It closes only once every order is settled, and is never deleted.
type TableSession struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TableLabel string     `gorm:"column:table_label;type:varchar(50);not null" json:"table"`
	Status     string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	OpenedAt   time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at"`
	Orders     []Order    `gorm:"foreignKey:TableSessionID" json:"orders"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (s TableSession) Open() bool {
	return s.Status == SessionStatusOpen
}

// UnsettledOrderIDs lists the orders still blocking a close. Requires
// Orders to be preloaded.
func (s TableSession) UnsettledOrderIDs() []uint {
	var ids []uint
	for _, o := range s.Orders {
		if !o.Settled() {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
