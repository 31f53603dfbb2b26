// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/techshop/catalog_service/internal/cache"
	"github.com/techshop/catalog_service/internal/store"
	"github.com/techshop/catalog_service/pkg/messaging"
	"github.com/techshop/catalog_service/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing the product catalog.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// GetAllProducts returns all active products, serving from the cache when
	// possible. Returns an empty slice if none exist.
	GetAllProducts(ctx context.Context) ([]ProductDto, error)

	// GetProductByID retrieves a single product by its ID, cache-checked.
	// The active flag is not enforced here, matching the repository behavior.
	// Returns ErrProductNotFound if no product exists with the given ID.
	GetProductByID(ctx context.Context, id int64) (*ProductDto, error)

	// GetProductsByCategory returns active products with an exact category
	// match. Not cached: always fresh from the store.
	GetProductsByCategory(ctx context.Context, category string) ([]ProductDto, error)

	// SearchProducts returns active products whose name contains the query,
	// case-insensitive. Not cached.
	SearchProducts(ctx context.Context, query string) ([]ProductDto, error)

	// CreateProduct persists a new product and evicts both cache regions.
	// Input validation is the API layer's responsibility.
	CreateProduct(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// UpdateStock applies a signed delta to a product's stock and evicts both
	// cache regions on success. Returns ErrProductNotFound if the product does
	// not exist and ErrInsufficientStock if the delta would drive stock negative.
	UpdateStock(ctx context.Context, id int64, delta int32) (*ProductDto, error)
}

// Service implements ProductService on top of a ProductStore and a
// process-local read-through cache.
type Service struct {
	repository      store.ProductStore
	cache           *cache.ProductCache
	publisher       messaging.Publisher
	createdCounter  metric.Int64Counter
	adjustedCounter metric.Int64Counter
}

// NewService creates a new catalog service. The publisher may be nil when
// eventing is disabled.
func NewService(repo store.ProductStore, productCache *cache.ProductCache, publisher messaging.Publisher) *Service {
	meter := otel.Meter("catalog-service")
	createdCounter, err := meter.Int64Counter("products_created", metric.WithDescription("Total number of created products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_created counter: %v", err))
	}
	adjustedCounter, err := meter.Int64Counter("stock_adjustments", metric.WithDescription("Total number of applied stock adjustments"))
	if err != nil {
		panic(fmt.Sprintf("failed to create stock_adjustments counter: %v", err))
	}
	return &Service{
		repository:      repo,
		cache:           productCache,
		publisher:       publisher,
		createdCounter:  createdCounter,
		adjustedCounter: adjustedCounter,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Active defaults to true when omitted.
type ProductCreateDto struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"required,max=100"`
	Stock       int32   `json:"stock"       validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"    validate:"max=500"`
	Active      *bool   `json:"active"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int32     `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StockAdjustDto represents the data transfer object for a stock adjustment.
// Quantity is a signed delta: negative values drain stock.
type StockAdjustDto struct {
	Quantity int32 `json:"quantity" validate:"required"`
}

// GetAllProducts returns all active products, populating the list cache on a
// miss. Empty results are never cached so a transiently empty store at
// startup cannot pin an empty list.
func (s *Service) GetAllProducts(ctx context.Context) ([]ProductDto, error) {
	if cached, ok := s.cache.GetAll(); ok {
		return toDtos(cached), nil
	}

	products, err := s.repository.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(products) > 0 {
		s.cache.SetAll(products)
	}

	return toDtos(products), nil
}

// GetProductByID retrieves a product by its ID, populating the by-ID cache on
// a miss. Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) GetProductByID(ctx context.Context, id int64) (*ProductDto, error) {
	if cached, ok := s.cache.GetByID(id); ok {
		return toDto(&cached), nil
	}

	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	s.cache.SetByID(*product)

	return toDto(product), nil
}

// GetProductsByCategory returns active products in the given category,
// straight from the store.
func (s *Service) GetProductsByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	products, err := s.repository.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for category %q: %w", category, err)
	}
	return toDtos(products), nil
}

// SearchProducts returns active products matching the query, straight from
// the store.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]ProductDto, error) {
	products, err := s.repository.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", query, err)
	}
	return toDtos(products), nil
}

// CreateProduct persists a new product and returns it with its assigned ID
// and timestamps. Both cache regions are evicted only after the write
// succeeds; a failed write leaves the cache untouched.
func (s *Service) CreateProduct(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	active := true
	if product.Active != nil {
		active = *product.Active
	}

	created, err := s.repository.Create(ctx, store.Product{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		Active:      active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.Invalidate()
	s.publish(ctx, events.ProductCreatedEvent{
		ProductID: created.ID,
		Name:      created.Name,
		Category:  created.Category,
		Price:     created.Price,
		CreatedAt: created.CreatedAt,
	})
	s.createdCounter.Add(ctx, 1)

	return toDto(created), nil
}

// UpdateStock applies a signed delta to a product's stock. The store performs
// the check-and-write atomically per row; on success both cache regions are
// evicted. Returns ErrProductNotFound or ErrInsufficientStock unchanged so
// the API layer can map them to distinct responses.
func (s *Service) UpdateStock(ctx context.Context, id int64, delta int32) (*ProductDto, error) {
	updated, err := s.repository.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock for product %d: %w", id, err)
	}

	s.cache.Invalidate()
	s.publish(ctx, events.ProductStockAdjustedEvent{
		ProductID:  updated.ID,
		Delta:      delta,
		NewStock:   updated.Stock,
		AdjustedAt: updated.UpdatedAt,
	})
	s.adjustedCounter.Add(ctx, 1)

	return toDto(updated), nil
}

// publish emits a catalog event, best effort. A publish failure is logged and
// never fails the request.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish catalog event", "subject", event.Subject(), "error", err)
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, item := range products {
		dtos[i] = *toDto(&item)
	}
	return dtos
}
