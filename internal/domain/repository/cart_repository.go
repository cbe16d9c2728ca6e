package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia de las líneas del carrito.
type CartRepository interface {
	// GetByProduct devuelve la línea del producto en el carrito o nil si no existe.
	GetByProduct(ctx context.Context, cartID, productID string) (*entity.CartItem, error)
	// ListDetails devuelve las líneas del carrito unidas con nombre, precio y stock del producto.
	ListDetails(ctx context.Context, cartID string) ([]*entity.CartItemDetail, error)
	// ReservedByProduct suma las cantidades reservadas en todos los carritos, por producto.
	// Sin productIDs considera todos los productos.
	ReservedByProduct(ctx context.Context, productIDs ...string) (map[string]int, error)
	Create(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, item *entity.CartItem) error
	// Remove elimina la línea si existe; no falla si no existe.
	Remove(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
}
