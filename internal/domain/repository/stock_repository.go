package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el stock de un producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate bloquea la fila de stock (SELECT FOR UPDATE). Devuelve nil si el producto no tiene stock.
	GetForUpdate(ctx context.Context, productID string) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
}
