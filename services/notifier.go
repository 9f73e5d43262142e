package services

import (
	"sync"

	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/models"
)

// Notifier fires the audible new-order alert exactly once per order id.
// Repeated observations of the same list are side-effect free.
type Notifier struct {
	mutex sync.Mutex
	seen  map[uint]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{seen: make(map[uint]struct{})}
}

// Observe scans an order list and alerts for ids not seen before.
// It returns the newly seen ids.
func (n *Notifier) Observe(orders []models.Order) []uint {
	n.mutex.Lock()
	var fresh []uint
	for _, o := range orders {
		if _, ok := n.seen[o.ID]; ok {
			continue
		}
		n.seen[o.ID] = struct{}{}
		fresh = append(fresh, o.ID)
	}
	n.mutex.Unlock()

	for _, id := range fresh {
		live.BroadcastNewOrderAlert(id)
	}
	return fresh
}
