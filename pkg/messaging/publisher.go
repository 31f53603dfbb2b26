package messaging

import (
	"context"
)

// Subjects for catalog events.
const (
	ProductCreatedSubject       = "catalog.product.created"
	ProductStockAdjustedSubject = "catalog.product.stock_adjusted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
