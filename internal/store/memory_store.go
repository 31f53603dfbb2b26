package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	catalogerrors "github.com/techshop/catalog_service/internal/errors"
)

// inMemory implements ProductStore using an in-memory map. It backs unit
// tests and broker-free local runs.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindAllActive retrieves all active products ordered by ID.
func (s *inMemory) FindAllActive(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(p Product) bool { return p.Active }), nil
}

// FindByCategory retrieves active products with an exact category match.
func (s *inMemory) FindByCategory(_ context.Context, category string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(p Product) bool { return p.Active && p.Category == category }), nil
}

// SearchByName retrieves active products whose name contains the query, case-insensitive.
func (s *inMemory) SearchByName(_ context.Context, query string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	return s.collect(func(p Product) bool {
		return p.Active && strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

// FindByID retrieves a product by ID regardless of the active flag.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	return &p, nil
}

// Create assigns an ID and timestamps and stores the product.
func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	product.ID = s.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// AdjustStock applies a signed delta to the product's stock. The mutex is
// held across the check and the write, matching the per-row atomicity the
// Postgres store gets from its guarded UPDATE.
func (s *inMemory) AdjustStock(_ context.Context, id int64, delta int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return nil, catalogerrors.ErrInsufficientStock
	}
	p.Stock = newStock
	p.UpdatedAt = time.Now()
	s.products[id] = p

	return &p, nil
}

// Count returns the total number of products, including inactive ones.
func (s *inMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.products)), nil
}

// collect returns products matching the filter, ordered by ID. Callers must
// hold at least a read lock.
func (s *inMemory) collect(match func(Product) bool) []Product {
	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if match(p) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
