package cart

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// LineItem is one product in the cart. Title, Image and Price are frozen
// at the first Add for an ID.
type LineItem struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is Price * Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is the whole cart keyed by product id. Every entry has Quantity >= 1.
type State struct {
	Items map[int]LineItem `json:"items"`
}

func Empty() State {
	return State{Items: map[int]LineItem{}}
}

func (s State) Len() int { return len(s.Items) }

func (s State) Get(id int) (LineItem, bool) {
	li, ok := s.Items[id]
	return li, ok
}

// Lines returns the entries sorted by id.
func (s State) Lines() []LineItem {
	out := make([]LineItem, 0, len(s.Items))
	for _, id := range slices.Sorted(maps.Keys(s.Items)) {
		out = append(out, s.Items[id])
	}
	return out
}

// Count is the sum of all quantities.
func (s State) Count() int {
	n := 0
	for _, li := range s.Items {
		n += li.Quantity
	}
	return n
}

func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range s.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}

func (s State) clone() State {
	if s.Items == nil {
		return Empty()
	}
	return State{Items: maps.Clone(s.Items)}
}
