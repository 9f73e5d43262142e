package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

// SelectedOption is a resolved modifier choice on a line, with names and
// price delta denormalized for later display.
type SelectedOption struct {
	OptionID       uint
	OptionValueID  uint
	OptionName     string
	ValueName      string
	PriceIncrement decimal.Decimal
}

// SelectedAddon is a resolved addon choice on a line. UnitPrice already
// includes the ingredient's own unit price.
type SelectedAddon struct {
	ProductAddonID uint
	IngredientID   uint
	IngredientName string
	Quantity       int
	UnitPrice      decimal.Decimal
}

// Line is one priced cart entry.
type Line struct {
	ProductID   uint
	ProductName string
	BasePrice   decimal.Decimal
	Quantity    int
	Note        string
	Options     []SelectedOption
	Addons      []SelectedAddon
}

// Key identifies a line for merging: two commits with equal product, note
// and (order-insensitive) option and addon selections land on one line.
type Key struct {
	ProductID uint
	Note      string
	Signature string
}

// Key builds the canonical structural key of the line.
func (l *Line) Key() Key {
	valueIDs := make([]uint, 0, len(l.Options))
	for _, o := range l.Options {
		valueIDs = append(valueIDs, o.OptionValueID)
	}
	sort.Slice(valueIDs, func(i, j int) bool { return valueIDs[i] < valueIDs[j] })

	type pair struct {
		id  uint
		qty int
	}
	pairs := make([]pair, 0, len(l.Addons))
	for _, a := range l.Addons {
		pairs = append(pairs, pair{a.ProductAddonID, a.Quantity})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })

	var sb strings.Builder
	for _, id := range valueIDs {
		fmt.Fprintf(&sb, "v%d;", id)
	}
	for _, p := range pairs {
		fmt.Fprintf(&sb, "a%d:%d;", p.id, p.qty)
	}
	return Key{ProductID: l.ProductID, Note: l.Note, Signature: sb.String()}
}

// Total is (base + sum of increments) * quantity + sum of addon
// unit-price * addon-quantity. No rounding happens here.
func (l *Line) Total() decimal.Decimal {
	unit := l.BasePrice
	for _, o := range l.Options {
		unit = unit.Add(o.PriceIncrement)
	}
	total := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
	for _, a := range l.Addons {
		total = total.Add(a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total
}

// Builder accumulates priced lines for one user interaction. It is not
// safe for concurrent use; each operator session owns its own builder.
type Builder struct {
	lines []*Line
	index map[Key]*Line
}

func NewBuilder() *Builder {
	return &Builder{index: make(map[Key]*Line)}
}

// Validate returns the names of required modifier groups with no selected
// value. An empty result means the selections are committable.
func Validate(product models.Product, selections SelectionState) []string {
	var violated []string
	for _, opt := range product.Options {
		if !opt.Satisfied(selections.SelectedCount(opt.ID)) {
			violated = append(violated, opt.Name)
		}
	}
	return violated
}

// CommitLine validates selections against the product and either merges
// into an equal existing line or appends a new one. Unmet required groups
// fail with ValidationError; nothing is silently corrected.
func (b *Builder) CommitLine(product models.Product, quantity int, note string, selections SelectionState, addons AddonState) (*Line, error) {
	if quantity < 1 {
		return nil, &apperr.ValidationError{Fields: []string{"quantity"}}
	}
	if violated := Validate(product, selections); len(violated) > 0 {
		return nil, &apperr.ValidationError{Fields: violated}
	}

	line := &Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		BasePrice:   product.Price,
		Quantity:    quantity,
		Note:        note,
	}

	for groupID, sel := range selections {
		opt, ok := product.OptionByID(groupID)
		if !ok {
			return nil, &apperr.ValidationError{Fields: []string{fmt.Sprintf("option %d", groupID)}}
		}
		for _, valueID := range sel.ValueIDs() {
			var value *models.OptionValue
			for i := range opt.Values {
				if opt.Values[i].ID == valueID {
					value = &opt.Values[i]
					break
				}
			}
			if value == nil {
				return nil, &apperr.ValidationError{Fields: []string{opt.Name}}
			}
			line.Options = append(line.Options, SelectedOption{
				OptionID:       opt.ID,
				OptionValueID:  value.ID,
				OptionName:     opt.Name,
				ValueName:      value.Name,
				PriceIncrement: value.PriceIncrement,
			})
		}
	}

	for _, addon := range product.Addons {
		qty, picked := addons[addon.ID]
		if !picked && !addon.IsRequired {
			continue
		}
		qty = addon.ClampQuantity(qty)
		if qty == 0 {
			continue
		}
		line.Addons = append(line.Addons, SelectedAddon{
			ProductAddonID: addon.ID,
			IngredientID:   addon.IngredientID,
			IngredientName: addon.Ingredient.Name,
			Quantity:       qty,
			UnitPrice:      addon.UnitPrice(),
		})
	}
	for id := range addons {
		if _, ok := product.AddonByID(id); !ok {
			return nil, &apperr.ValidationError{Fields: []string{fmt.Sprintf("addon %d", id)}}
		}
	}

	key := line.Key()
	if existing, ok := b.index[key]; ok {
		// the addon term of the total does not scale with line quantity,
		// so merging sums the addon quantities as well; the map key keeps
		// the per-commit identity
		existing.Quantity += line.Quantity
		for i := range existing.Addons {
			existing.Addons[i].Quantity += line.Addons[i].Quantity
		}
		return existing, nil
	}
	b.lines = append(b.lines, line)
	b.index[key] = line
	return line, nil
}

// AdjustQuantity changes a line's quantity by delta. A resulting quantity
// of zero or below removes the line entirely.
func (b *Builder) AdjustQuantity(key Key, delta int) {
	line, ok := b.index[key]
	if !ok {
		return
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(b.index, key)
		for i, l := range b.lines {
			if l == line {
				b.lines = append(b.lines[:i], b.lines[i+1:]...)
				break
			}
		}
	}
}

// Lines returns the current lines in insertion order.
func (b *Builder) Lines() []*Line {
	return b.lines
}

// Total sums all line totals without rounding. Callers round to two
// decimals at presentation or submission only.
func (b *Builder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.lines {
		total = total.Add(l.Total())
	}
	return total
}
