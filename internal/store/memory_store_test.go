package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogerrors "github.com/techshop/catalog_service/internal/errors"
)

func seedStore(t *testing.T) ProductStore {
	t.Helper()
	s := NewInMemoryStore()
	ctx := context.Background()

	products := []Product{
		{Name: "iPhone 15 Pro", Price: 1229.00, Category: "Smartphones", Stock: 50, Active: true},
		{Name: "Galaxy S24 Ultra", Price: 1419.00, Category: "Smartphones", Stock: 40, Active: true},
		{Name: "Sony WH-1000XM5", Price: 349.99, Category: "Audio", Stock: 60, Active: true},
		{Name: "Discontinued Phone", Price: 99.99, Category: "Smartphones", Stock: 0, Active: false},
	}
	for _, p := range products {
		_, err := s.Create(ctx, p)
		require.NoError(t, err)
	}
	return s
}

func Test_InMemoryStore_FindAllActive_ExcludesInactive(t *testing.T) {
	s := seedStore(t)

	list, err := s.FindAllActive(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		assert.True(t, p.Active)
		assert.NotEqual(t, "Discontinued Phone", p.Name)
	}
	// insertion order is stable
	assert.Equal(t, "iPhone 15 Pro", list[0].Name)
}

func Test_InMemoryStore_FindByCategory(t *testing.T) {
	s := seedStore(t)
	testCases := []struct {
		name     string
		category string
		expected int
	}{
		{name: "exact match excludes inactive", category: "Smartphones", expected: 2},
		{name: "single match", category: "Audio", expected: 1},
		{name: "case-sensitive", category: "smartphones", expected: 0},
		{name: "unknown category", category: "Monitors", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := s.FindByCategory(context.Background(), tc.category)
			require.NoError(t, err)
			assert.Len(t, list, tc.expected)
		})
	}
}

func Test_InMemoryStore_SearchByName_CaseInsensitive(t *testing.T) {
	s := seedStore(t)
	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "lowercase query", query: "iphone", expected: []string{"iPhone 15 Pro"}},
		{name: "uppercase query", query: "PRO", expected: []string{"iPhone 15 Pro"}},
		{name: "substring in the middle", query: "1000", expected: []string{"Sony WH-1000XM5"}},
		{name: "inactive excluded", query: "Discontinued", expected: []string{}},
		{name: "no match", query: "pixel", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := s.SearchByName(context.Background(), tc.query)
			require.NoError(t, err)
			names := make([]string, 0, len(list))
			for _, p := range list {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func Test_InMemoryStore_FindByID_IgnoresActiveFlag(t *testing.T) {
	s := seedStore(t)

	// inactive products remain fetchable by ID
	found, err := s.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Discontinued Phone", found.Name)
	assert.False(t, found.Active)

	_, err = s.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_InMemoryStore_Create_AssignsIDAndTimestamps(t *testing.T) {
	s := NewInMemoryStore()

	created, err := s.Create(context.Background(), Product{Name: "Test Widget", Price: 9.99, Category: "Misc", Stock: 5, Active: true})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func Test_InMemoryStore_AdjustStock(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	created, err := s.Create(ctx, Product{Name: "Test Widget", Price: 9.99, Category: "Misc", Stock: 5, Active: true})
	require.NoError(t, err)

	// drain part of the stock
	updated, err := s.AdjustStock(ctx, created.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), updated.Stock)

	// over-draining is rejected atomically and leaves stock unchanged
	_, err = s.AdjustStock(ctx, created.ID, -10)
	assert.ErrorIs(t, err, catalogerrors.ErrInsufficientStock)

	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), found.Stock)

	// restocking works
	updated, err = s.AdjustStock(ctx, created.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, int32(10), updated.Stock)

	_, err = s.AdjustStock(ctx, 999, 1)
	assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
}

func Test_InMemoryStore_Count_IncludesInactive(t *testing.T) {
	s := seedStore(t)

	count, err := s.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
