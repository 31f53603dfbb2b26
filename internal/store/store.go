// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindAllActive returns all products with the active flag set,
	// ordered by ID. Returns an empty slice if none exist.
	FindAllActive(ctx context.Context) ([]Product, error)

	// FindByCategory returns active products whose category equals the given
	// string exactly (case-sensitive).
	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// SearchByName returns active products whose name contains the given
	// substring, case-insensitive.
	SearchByName(ctx context.Context, query string) ([]Product, error)

	// FindByID retrieves a single product by its identifier. The active flag
	// is not applied here: inactive products remain fetchable
	// by ID even though they are invisible to every list query.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts a new product, assigns its ID and timestamps, and
	// returns the persisted row.
	Create(ctx context.Context, product Product) (*Product, error)

	// AdjustStock applies a signed delta to a product's stock count,
	// atomically with respect to concurrent adjustments on the same ID.
	// Returns ErrProductNotFound if the product does not exist and
	// ErrInsufficientStock if the delta would drive stock negative;
	// in both cases nothing is written.
	AdjustStock(ctx context.Context, id int64, delta int32) (*Product, error)

	// Count returns the total number of product rows, including inactive ones.
	Count(ctx context.Context) (int64, error)
}
