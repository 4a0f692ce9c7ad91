package catalog

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[int]Product
}

// NewMemStore returns a store holding products. Use SeedProducts for a
// small demo catalog.
func NewMemStore(products ...Product) *MemStore {
	s := &MemStore{m: make(map[int]Product, len(products))}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

func SeedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Title:       "Fjallraven Foldsack No. 1 Backpack",
			Price:       decimal.RequireFromString("109.95"),
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Price:       decimal.RequireFromString("22.3"),
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:      Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          3,
			Title:       "Mens Cotton Jacket",
			Price:       decimal.RequireFromString("55.99"),
			Description: "Great outerwear jackets for Spring, Autumn and Winter.",
			Category:    "men's clothing",
			Image:       "https://fakestoreapi.com/img/71li-ujtlUL._AC_UX679_.jpg",
			Rating:      Rating{Rate: 4.7, Count: 500},
		},
		{
			ID:          4,
			Title:       "Womens Short Sleeve Moisture",
			Price:       decimal.RequireFromString("7.95"),
			Description: "Lightweight, breathable fabric with a soft touch.",
			Category:    "women's clothing",
			Image:       "https://fakestoreapi.com/img/71z3kpMAYsL._AC_UY879_.jpg",
			Rating:      Rating{Rate: 4.5, Count: 146},
		},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, id := range slices.Sorted(maps.Keys(s.m)) {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

// Put inserts or replaces a product.
func (s *MemStore) Put(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[p.ID] = p
}
