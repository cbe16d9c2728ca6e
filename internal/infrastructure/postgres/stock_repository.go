package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Devuelve nil si el producto no tiene fila de stock.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT id::text, product_id::text, quantity, updated_at
		FROM stocks WHERE product_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Update persiste la cantidad física. El CHECK (quantity >= 0) de la tabla rechaza saldos negativos.
func (r *StockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stocks SET quantity = $2, updated_at = $3 WHERE product_id = $1`,
		stock.ProductID, stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: el producto %s quedaría con stock negativo", domain.ErrInsufficientStock, stock.ProductID)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock del producto %s", domain.ErrNotFound, stock.ProductID)
	}
	return nil
}
