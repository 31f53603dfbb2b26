package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	catalogerrors "github.com/techshop/catalog_service/internal/errors"
)

const productColumns = `id, name, description, price, category, stock, image_url, active, created_at, updated_at`

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// FindAllActive retrieves all active products ordered by ID.
func (p *PgStore) FindAllActive(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY id`
	products, err := p.queryProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find active products: %w", err)
	}
	return products, nil
}

// FindByCategory retrieves active products with an exact category match.
func (p *PgStore) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active AND category = $1 ORDER BY id`
	products, err := p.queryProducts(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return products, nil
}

// SearchByName retrieves active products whose name contains the query,
// case-insensitive. Pattern metacharacters in the query are escaped so the
// match is always a literal substring match.
func (p *PgStore) SearchByName(ctx context.Context, query string) ([]Product, error) {
	pattern := "%" + escapeLikePattern(query) + "%"
	sql := `SELECT ` + productColumns + ` FROM products WHERE active AND name ILIKE $1 ORDER BY id`
	products, err := p.queryProducts(ctx, sql, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its identifier regardless of the active flag.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// Create inserts a new product and returns the persisted row with its
// assigned ID and timestamps.
func (p *PgStore) Create(ctx context.Context, product Product) (*Product, error) {
	query := `INSERT INTO products (name, description, price, category, stock, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns
	created, err := scanProduct(p.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Stock,
		product.ImageURL,
		product.Active,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// AdjustStock applies a signed delta to the product's stock inside a
// transaction. The guarded UPDATE matches only when the resulting stock stays
// non-negative, which makes concurrent adjustments on the same row safe.
// Returns ErrProductNotFound or ErrInsufficientStock without writing anything.
func (p *PgStore) AdjustStock(ctx context.Context, id int64, delta int32) (*Product, error) {
	var updated *Product

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		query := `UPDATE products
			SET stock = stock + $2, updated_at = now()
			WHERE id = $1 AND stock + $2 >= 0
			RETURNING ` + productColumns
		product, err := scanProduct(tx.QueryRow(ctx, query, id, delta))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// The guarded update matched nothing: either the row is
				// missing or the delta would drive stock negative.
				var exists int
				err = tx.QueryRow(ctx, `SELECT 1 FROM products WHERE id = $1`, id).Scan(&exists)
				if err != nil {
					if errors.Is(err, pgx.ErrNoRows) {
						return catalogerrors.ErrProductNotFound
					}
					return fmt.Errorf("failed to check product existence: %w", err)
				}
				return catalogerrors.ErrInsufficientStock
			}
			return fmt.Errorf("failed to adjust product stock: %w", err)
		}
		updated = product
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	return updated, nil
}

// Count returns the total number of product rows.
func (p *PgStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := p.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *PgStore) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var pr Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Description, &pr.Price, &pr.Category,
			&pr.Stock, &pr.ImageURL, &pr.Active, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var pr Product
	err := row.Scan(&pr.ID, &pr.Name, &pr.Description, &pr.Price, &pr.Category,
		&pr.Stock, &pr.ImageURL, &pr.Active, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// escapeLikePattern escapes LIKE metacharacters so user input matches literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
