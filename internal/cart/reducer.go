package cart

// Op names a cart transition.
type Op string

const (
	OpAdd       Op = "add"
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
)

// Action is one transition request. Item is read for OpAdd only, ID for the
// other ops.
type Action struct {
	Op   Op
	Item LineItem
	ID   int
}

func AddAction(item LineItem) Action { return Action{Op: OpAdd, Item: item, ID: item.ID} }
func IncrementAction(id int) Action  { return Action{Op: OpIncrement, ID: id} }
func DecrementAction(id int) Action  { return Action{Op: OpDecrement, ID: id} }

// Reduce applies a to s and returns the resulting state. It never mutates
// s: a no-op returns s as is, a change returns a fresh map. Unknown ops are
// no-ops.
func Reduce(s State, a Action) State {
	switch a.Op {
	case OpAdd:
		next := s.clone()
		li, ok := next.Items[a.Item.ID]
		if !ok {
			li = a.Item
			li.Quantity = 0
		}
		li.Quantity++
		next.Items[li.ID] = li
		return next

	case OpIncrement:
		li, ok := s.Items[a.ID]
		if !ok {
			return s
		}
		next := s.clone()
		li.Quantity++
		next.Items[a.ID] = li
		return next

	case OpDecrement:
		li, ok := s.Items[a.ID]
		if !ok {
			return s
		}
		next := s.clone()
		li.Quantity--
		if li.Quantity <= 0 {
			delete(next.Items, a.ID)
		} else {
			next.Items[a.ID] = li
		}
		return next
	}

	return s
}
