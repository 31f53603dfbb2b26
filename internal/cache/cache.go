// Package cache provides a process-local, two-region product cache.
//
// Region one holds the "all active products" list under a single constant
// key; region two holds individual products keyed by ID. There is no TTL and
// no capacity bound: invalidation is event-driven, and any mutation clears
// both regions wholesale. After an eviction every read misses until the
// service repopulates from the store, so no stale value survives a write.
package cache

import (
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/techshop/catalog_service/internal/store"
)

// allProductsKey is the single key of the list region.
const allProductsKey = "all-active"

// ProductCache is safe for arbitrary interleavings of concurrent reads and
// writes from multiple requests.
type ProductCache struct {
	lists *xsync.MapOf[string, []store.Product]
	byID  *xsync.MapOf[int64, store.Product]
}

// NewProductCache creates an empty cache.
func NewProductCache() *ProductCache {
	return &ProductCache{
		lists: xsync.NewMapOf[string, []store.Product](),
		byID:  xsync.NewMapOf[int64, store.Product](),
	}
}

// GetAll returns the cached active-product list and whether it was present.
func (c *ProductCache) GetAll() ([]store.Product, bool) {
	return c.lists.Load(allProductsKey)
}

// SetAll stores the active-product list. Callers must not cache empty
// results; that rule lives in the service layer.
func (c *ProductCache) SetAll(products []store.Product) {
	c.lists.Store(allProductsKey, products)
}

// GetByID returns the cached product for the given ID and whether it was present.
func (c *ProductCache) GetByID(id int64) (store.Product, bool) {
	return c.byID.Load(id)
}

// SetByID stores a single product under its ID.
func (c *ProductCache) SetByID(product store.Product) {
	c.byID.Store(product.ID, product)
}

// Invalidate clears both regions.
func (c *ProductCache) Invalidate() {
	c.lists.Clear()
	c.byID.Clear()
}
