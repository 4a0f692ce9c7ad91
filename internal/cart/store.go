package cart

import "sync"

// Store owns one cart State and applies actions to it one at a time.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: Empty()}
}

// Dispatch applies a and returns a copy of the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	return s.state.clone()
}

// Add inserts item with quantity 1, or bumps the quantity of an existing
// entry without touching its title, image or price. item.Quantity is ignored.
func (s *Store) Add(item LineItem) State { return s.Dispatch(AddAction(item)) }

func (s *Store) Increment(id int) State { return s.Dispatch(IncrementAction(id)) }

// Decrement removes the entry once its quantity drops to zero.
func (s *Store) Decrement(id int) State { return s.Dispatch(DecrementAction(id)) }

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}
