// Package seed inserts the demo catalog on first startup.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/techshop/catalog_service/internal/store"
)

// Run seeds the demo catalog when the store is empty. Invoking it against a
// non-empty store is a no-op, so repeated startups never duplicate data.
func Run(ctx context.Context, s store.ProductStore, logger *slog.Logger) error {
	count, err := s.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logger.Info("Database already initialized, skipping seeding", "products", count)
		return nil
	}

	logger.Info("Seeding demo catalog...")
	catalog := demoCatalog()
	for _, product := range catalog {
		if _, err := s.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
		}
	}
	logger.Info("Demo catalog seeded", "products", len(catalog))
	return nil
}

// demoCatalog returns the demo product set inserted into an empty store.
func demoCatalog() []store.Product {
	return []store.Product{
		{
			Name:        `MacBook Pro 16"`,
			Description: "Apple laptop with M3 Pro chip, 18 GB RAM, 512 GB SSD",
			Price:       2799.99,
			Category:    "Computers",
			Stock:       25,
			ImageURL:    "https://via.placeholder.com/300x200?text=MacBook+Pro",
			Active:      true,
		},
		{
			Name:        "Dell XPS 15",
			Description: "Dell laptop with Intel Core i7, 16 GB RAM, 3.5K OLED display",
			Price:       1899.99,
			Category:    "Computers",
			Stock:       30,
			ImageURL:    "https://via.placeholder.com/300x200?text=Dell+XPS",
			Active:      true,
		},
		{
			Name:        "iPhone 15 Pro",
			Description: "Apple smartphone with A17 Pro chip, 256 GB, Titanium",
			Price:       1229.00,
			Category:    "Smartphones",
			Stock:       50,
			ImageURL:    "https://via.placeholder.com/300x200?text=iPhone+15+Pro",
			Active:      true,
		},
		{
			Name:        "Samsung Galaxy S24 Ultra",
			Description: "Samsung smartphone with Galaxy AI, built-in S Pen, 256 GB",
			Price:       1419.00,
			Category:    "Smartphones",
			Stock:       40,
			ImageURL:    "https://via.placeholder.com/300x200?text=Galaxy+S24",
			Active:      true,
		},
		{
			Name:        "Sony WH-1000XM5",
			Description: "Premium wireless headphones with active noise cancellation",
			Price:       349.99,
			Category:    "Audio",
			Stock:       60,
			ImageURL:    "https://via.placeholder.com/300x200?text=Sony+WH1000XM5",
			Active:      true,
		},
		{
			Name:        "AirPods Pro 2",
			Description: "Apple earbuds with adaptive noise cancellation and USB-C",
			Price:       279.00,
			Category:    "Audio",
			Stock:       80,
			ImageURL:    "https://via.placeholder.com/300x200?text=AirPods+Pro",
			Active:      true,
		},
		{
			Name:        `LG UltraGear 27" 4K`,
			Description: "27-inch gaming monitor, 4K UHD, 144Hz, 1ms, HDR600",
			Price:       599.99,
			Category:    "Monitors",
			Stock:       20,
			ImageURL:    "https://via.placeholder.com/300x200?text=LG+UltraGear",
			Active:      true,
		},
		{
			Name:        "Logitech MX Master 3S",
			Description: "Ergonomic wireless mouse, 8000 DPI sensor, USB-C",
			Price:       109.99,
			Category:    "Accessories",
			Stock:       100,
			ImageURL:    "https://via.placeholder.com/300x200?text=MX+Master+3S",
			Active:      true,
		},
		{
			Name:        "Keychron K3 Pro",
			Description: "Low-profile wireless mechanical keyboard, RGB, hot-swappable",
			Price:       119.00,
			Category:    "Accessories",
			Stock:       45,
			ImageURL:    "https://via.placeholder.com/300x200?text=Keychron+K3",
			Active:      true,
		},
		{
			Name:        "iPad Air M2",
			Description: `Apple tablet with M2 chip, 11" Liquid Retina display, 256 GB`,
			Price:       699.00,
			Category:    "Tablets",
			Stock:       35,
			ImageURL:    "https://via.placeholder.com/300x200?text=iPad+Air+M2",
			Active:      true,
		},
		{
			Name:        "NVIDIA RTX 4070 Ti",
			Description: "Gaming graphics card, 12 GB GDDR6X, Ray Tracing, DLSS 3",
			Price:       849.99,
			Category:    "Components",
			Stock:       15,
			ImageURL:    "https://via.placeholder.com/300x200?text=RTX+4070+Ti",
			Active:      true,
		},
		{
			Name:        "Samsung 990 Pro 2TB",
			Description: "NVMe M.2 SSD, 7450 MB/s read, 6900 MB/s write",
			Price:       179.99,
			Category:    "Components",
			Stock:       70,
			ImageURL:    "https://via.placeholder.com/300x200?text=Samsung+990+Pro",
			Active:      true,
		},
	}
}
