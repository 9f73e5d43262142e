package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdvapp/restaurant-pos/models"
)

func TestNotifierAlertsOncePerOrder(t *testing.T) {
	n := NewNotifier()

	first := []models.Order{{ID: 1}, {ID: 2}}
	assert.ElementsMatch(t, []uint{1, 2}, n.Observe(first))

	// same list again: silence
	assert.Empty(t, n.Observe(first))

	// one new order among the already-seen
	second := []models.Order{{ID: 1}, {ID: 2}, {ID: 3}}
	assert.Equal(t, []uint{3}, n.Observe(second))
	assert.Empty(t, n.Observe(second))
}
