package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_DoesNotMutateInput(t *testing.T) {
	start := Reduce(Empty(), AddAction(shirt()))
	require.Equal(t, 1, start.Items[1].Quantity)

	steps := []Action{
		AddAction(shirt()),
		IncrementAction(1),
		DecrementAction(1),
	}
	for _, a := range steps {
		next := Reduce(start, a)
		assert.Equal(t, 1, start.Items[1].Quantity, "op %s mutated its input", a.Op)
		assert.NotNil(t, next.Items)
	}
}

func TestReduce_NoopReturnsSameState(t *testing.T) {
	start := Reduce(Empty(), AddAction(shirt()))

	for _, a := range []Action{IncrementAction(2), DecrementAction(2), {Op: "bogus", ID: 1}} {
		next := Reduce(start, a)
		assert.Equal(t, start, next)
	}
}

func TestReduce_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		wantQty int
		present bool
	}{
		{name: "absent add", actions: []Action{AddAction(shirt())}, wantQty: 1, present: true},
		{name: "present add", actions: []Action{AddAction(shirt()), AddAction(shirt())}, wantQty: 2, present: true},
		{name: "present increment", actions: []Action{AddAction(shirt()), IncrementAction(1)}, wantQty: 2, present: true},
		{name: "present decrement to zero", actions: []Action{AddAction(shirt()), DecrementAction(1)}, present: false},
		{name: "present decrement", actions: []Action{AddAction(shirt()), AddAction(shirt()), DecrementAction(1)}, wantQty: 1, present: true},
		{name: "absent increment", actions: []Action{IncrementAction(1)}, present: false},
		{name: "absent decrement", actions: []Action{DecrementAction(1)}, present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Empty()
			for _, a := range tt.actions {
				s = Reduce(s, a)
			}
			li, ok := s.Get(1)
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.wantQty, li.Quantity)
			}
			for _, li := range s.Items {
				assert.GreaterOrEqual(t, li.Quantity, 1)
			}
		})
	}
}

func TestReduce_NilItemsState(t *testing.T) {
	s := Reduce(State{}, AddAction(shirt()))
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 0, Reduce(State{}, DecrementAction(1)).Len())
}

func TestState_TotalsAndOrder(t *testing.T) {
	s := Empty()
	s = Reduce(s, AddAction(LineItem{ID: 3, Title: "c", Price: decimal.RequireFromString("0.10")}))
	s = Reduce(s, AddAction(LineItem{ID: 1, Title: "a", Price: decimal.RequireFromString("19.99")}))
	s = Reduce(s, IncrementAction(1))
	s = Reduce(s, AddAction(LineItem{ID: 2, Title: "b", Price: decimal.RequireFromString("5")}))

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{lines[0].ID, lines[1].ID, lines[2].ID})

	assert.Equal(t, 4, s.Count())
	assert.Equal(t, "45.08", s.Total().StringFixed(2))
	assert.Equal(t, "39.98", lines[0].Subtotal().StringFixed(2))
}

func TestState_EmptyTotals(t *testing.T) {
	s := Empty()
	assert.Equal(t, 0, s.Count())
	assert.True(t, s.Total().IsZero())
	assert.Empty(t, s.Lines())
}
