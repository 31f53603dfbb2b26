package store

import "time"

// Product represents a catalog row. The store assigns ID and both timestamps
// on creation; UpdatedAt is refreshed on every mutation. Inactive products
// stay in storage but are excluded from every list query.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int32
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
