package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CatalogWriter da de alta productos con su fila de stock (usado por el seed).
type CatalogWriter struct {
	pool *pgxpool.Pool
}

// NewCatalogWriter construye el writer sobre el pool.
func NewCatalogWriter(pool *pgxpool.Pool) *CatalogWriter {
	return &CatalogWriter{pool: pool}
}

// AddProduct inserta el producto y su stock en una sola transacción.
func (w *CatalogWriter) AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*entity.Product, error) {
	if strings.TrimSpace(name) == "" || len(name) > entity.ProductNameMaxLen || price.IsNegative() || stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{Name: name, Price: price, StockQuantity: stock}
	err := pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id::text, created_at, updated_at`,
			name, price,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO stocks (product_id, quantity) VALUES ($1, $2)`, p.ID, stock); err != nil {
			return fmt.Errorf("insert stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Count devuelve cuántos productos hay en el catálogo.
func (w *CatalogWriter) Count(ctx context.Context) (int, error) {
	var n int
	if err := w.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
