package cart

import (
	"sort"

	"github.com/pdvapp/restaurant-pos/models"
)

// Selection is the pending choice state for one modifier group. The
// single/multiple distinction is carried by the concrete type, not by a
// runtime convention.
type Selection interface {
	ValueIDs() []uint
	isSelection()
}

// SingleSelection holds the one chosen value of a single-choice group.
type SingleSelection struct {
	ValueID uint
}

func (s SingleSelection) ValueIDs() []uint { return []uint{s.ValueID} }
func (s SingleSelection) isSelection()     {}

// MultiSelection holds the chosen value set of a multiple-choice group.
type MultiSelection map[uint]struct{}

func (m MultiSelection) ValueIDs() []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
func (m MultiSelection) isSelection() {}

// SelectionState maps modifier-group id to its current selection while a
// product is being configured.
type SelectionState map[uint]Selection

// Select applies a tap on value for group. Single groups replace the
// current value; multiple groups toggle membership.
func (st SelectionState) Select(group models.Option, valueID uint) {
	if group.Type == models.OptionTypeMultiple {
		m, ok := st[group.ID].(MultiSelection)
		if !ok {
			m = MultiSelection{}
			st[group.ID] = m
		}
		if _, selected := m[valueID]; selected {
			delete(m, valueID)
		} else {
			m[valueID] = struct{}{}
		}
		if len(m) == 0 {
			delete(st, group.ID)
		}
		return
	}
	st[group.ID] = SingleSelection{ValueID: valueID}
}

// ApplyDefaults pre-selects every default-flagged value, the way the
// product detail screen opens.
func (st SelectionState) ApplyDefaults(product models.Product) {
	for _, opt := range product.Options {
		for _, v := range opt.Values {
			if v.DefaultOption {
				st.Select(opt, v.ID)
			}
		}
	}
}

// SelectedCount returns how many values are selected for the group.
func (st SelectionState) SelectedCount(groupID uint) int {
	sel, ok := st[groupID]
	if !ok {
		return 0
	}
	return len(sel.ValueIDs())
}

// AddonState maps product-addon id to its chosen quantity.
type AddonState map[uint]int

// SetQuantity stores q clamped to the addon's bounds. A clamped-to-zero
// optional addon is dropped from the state.
func (st AddonState) SetQuantity(addon models.ProductAddon, q int) {
	q = addon.ClampQuantity(q)
	if q == 0 {
		delete(st, addon.ID)
		return
	}
	st[addon.ID] = q
}
