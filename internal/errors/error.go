// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when no product exists with the requested ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock adjustment would drive the
	// stock count negative. The adjustment is rejected without a partial write.
	ErrInsufficientStock = errors.New("insufficient stock")
)
