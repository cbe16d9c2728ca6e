package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo (DIP).
// Los productos se devuelven con StockQuantity cargado (0 si no hay fila de stock).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// ListPaged devuelve la ventana [offset, offset+limit) ordenada por nombre y el total de productos.
	ListPaged(ctx context.Context, limit, offset int) ([]*entity.Product, int, error)
}
