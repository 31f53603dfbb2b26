package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techshop/catalog_service/internal/cache"
	catalogerrors "github.com/techshop/catalog_service/internal/errors"
	"github.com/techshop/catalog_service/internal/store"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	count    int64
	error    error

	findAllCalls int
	findByIDCall int
}

func (m *mockProductStore) FindAllActive(_ context.Context) ([]store.Product, error) {
	m.findAllCalls++
	return m.products, m.error
}

func (m *mockProductStore) FindByCategory(_ context.Context, _ string) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductStore) SearchByName(_ context.Context, _ string) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	m.findByIDCall++
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) Create(_ context.Context, _ store.Product) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) AdjustStock(_ context.Context, _ int64, _ int32) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) Count(_ context.Context) (int64, error) {
	return m.count, m.error
}

func Test_CatalogService_GetAllProducts(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    []ProductDto
		expectError error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{{ID: 1, Name: "Toy", Active: true}},
			},
			expected: []ProductDto{{ID: 1, Name: "Toy", Active: true}},
		},
		{
			name:      "Success - no products",
			mockStore: &mockProductStore{products: []store.Product{}},
			expected:  []ProductDto{},
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := NewService(tc.mockStore, cache.NewProductCache(), nil)
			// when
			list, err := svc.GetAllProducts(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, list)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, list)
		})
	}
}

func Test_CatalogService_GetAllProducts_CachesNonEmptyResults(t *testing.T) {
	mockStore := &mockProductStore{
		products: []store.Product{{ID: 1, Name: "Toy", Active: true}},
	}
	svc := NewService(mockStore, cache.NewProductCache(), nil)

	for range 3 {
		list, err := svc.GetAllProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
	}

	// first call populated the cache, the rest were served from it
	assert.Equal(t, 1, mockStore.findAllCalls)
}

func Test_CatalogService_GetAllProducts_NeverCachesEmptyResults(t *testing.T) {
	mockStore := &mockProductStore{products: []store.Product{}}
	svc := NewService(mockStore, cache.NewProductCache(), nil)

	for range 3 {
		list, err := svc.GetAllProducts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	}

	// an empty store result must not be pinned in the cache
	assert.Equal(t, 3, mockStore.findAllCalls)
}

func Test_CatalogService_GetProductByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: 7, Name: "Toy", Active: true},
			},
			productID: 7,
			expected:  &ProductDto{ID: 7, Name: "Toy", Active: true},
		},
		{
			name: "Success - inactive product still fetchable by ID",
			mockStore: &mockProductStore{
				product: store.Product{ID: 8, Name: "Old Toy", Active: false},
			},
			productID: 8,
			expected:  &ProductDto{ID: 8, Name: "Old Toy", Active: false},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: catalogerrors.ErrProductNotFound},
			productID:   99,
			expectError: catalogerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(tc.mockStore, cache.NewProductCache(), nil)

			found, err := svc.GetProductByID(context.Background(), tc.productID)

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_CatalogService_GetProductByID_ServedFromCacheOnSecondCall(t *testing.T) {
	mockStore := &mockProductStore{product: store.Product{ID: 7, Name: "Toy", Active: true}}
	svc := NewService(mockStore, cache.NewProductCache(), nil)

	for range 2 {
		found, err := svc.GetProductByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), found.ID)
	}

	assert.Equal(t, 1, mockStore.findByIDCall)
}

func Test_CatalogService_CreateProduct_EvictsCache(t *testing.T) {
	// an in-memory store makes the eviction observable end to end
	memStore := store.NewInMemoryStore()
	svc := NewService(memStore, cache.NewProductCache(), nil)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, ProductCreateDto{Name: "Test Widget", Price: 9.99, Category: "Misc", Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(5), first.Stock)
	assert.True(t, first.Active)

	// warm the list cache
	list, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// a second create must be visible in the next listing
	_, err = svc.CreateProduct(ctx, ProductCreateDto{Name: "Another Widget", Price: 19.99, Category: "Misc", Stock: 1})
	require.NoError(t, err)

	list, err = svc.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func Test_CatalogService_CreateProduct_ActiveFlagDefaultsTrue(t *testing.T) {
	svc := NewService(store.NewInMemoryStore(), cache.NewProductCache(), nil)
	inactive := false

	created, err := svc.CreateProduct(context.Background(), ProductCreateDto{Name: "Hidden", Price: 1, Category: "Misc", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, created.Active)

	created, err = svc.CreateProduct(context.Background(), ProductCreateDto{Name: "Visible", Price: 1, Category: "Misc"})
	require.NoError(t, err)
	assert.True(t, created.Active)
}

func Test_CatalogService_CreateProduct_FailedWriteLeavesCacheUntouched(t *testing.T) {
	ErrStoreError := errors.New("store error")
	productCache := cache.NewProductCache()
	productCache.SetAll([]store.Product{{ID: 1, Name: "Toy", Active: true}})
	svc := NewService(&mockProductStore{error: ErrStoreError}, productCache, nil)

	_, err := svc.CreateProduct(context.Background(), ProductCreateDto{Name: "Test Widget", Price: 9.99, Category: "Misc"})

	assert.ErrorIs(t, err, ErrStoreError)
	_, ok := productCache.GetAll()
	assert.True(t, ok, "cache must not be evicted on a failed write")
}

func Test_CatalogService_UpdateStock(t *testing.T) {
	memStore := store.NewInMemoryStore()
	svc := NewService(memStore, cache.NewProductCache(), nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductCreateDto{Name: "Test Widget", Price: 9.99, Category: "Misc", Stock: 5})
	require.NoError(t, err)

	// drain part of the stock
	updated, err := svc.UpdateStock(ctx, created.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), updated.Stock)

	// over-draining is rejected and leaves stock unchanged
	_, err = svc.UpdateStock(ctx, created.ID, -10)
	assert.ErrorIs(t, err, catalogerrors.ErrInsufficientStock)

	found, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), found.Stock)

	_, err = svc.UpdateStock(ctx, 999, 1)
	assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_CatalogService_UpdateStock_EvictsByIDRegion(t *testing.T) {
	memStore := store.NewInMemoryStore()
	svc := NewService(memStore, cache.NewProductCache(), nil)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductCreateDto{Name: "Test Widget", Price: 9.99, Category: "Misc", Stock: 5})
	require.NoError(t, err)

	// warm the by-ID cache
	found, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), found.Stock)

	_, err = svc.UpdateStock(ctx, created.ID, -3)
	require.NoError(t, err)

	// the adjustment must be visible regardless of the prior cache state
	found, err = svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), found.Stock)
}

func Test_CatalogService_CategoryAndSearchAreUncached(t *testing.T) {
	memStore := store.NewInMemoryStore()
	svc := NewService(memStore, cache.NewProductCache(), nil)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductCreateDto{Name: "iPhone 15 Pro", Price: 1229, Category: "Smartphones", Stock: 50})
	require.NoError(t, err)

	byCategory, err := svc.GetProductsByCategory(ctx, "Smartphones")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	// search is case-insensitive substring match
	for _, query := range []string{"iphone", "PRO"} {
		results, err := svc.SearchProducts(ctx, query)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "iPhone 15 Pro", results[0].Name)
	}

	// a fresh create is immediately visible to both uncached reads
	_, err = svc.CreateProduct(ctx, ProductCreateDto{Name: "iPhone SE", Price: 529, Category: "Smartphones", Stock: 10})
	require.NoError(t, err)

	byCategory, err = svc.GetProductsByCategory(ctx, "Smartphones")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	results, err := svc.SearchProducts(ctx, "iphone")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
