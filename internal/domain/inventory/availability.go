package inventory

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// AvailableStock calcula cuántas unidades de un producto se pueden reservar todavía (servicio de dominio).
// Disponible = max(0, Stock - ReservadoTotal + ReservaPropia)
//
// reservedTotal suma las reservas de todos los carritos para el producto. ownReserved es la
// cantidad que ya reserva la línea que se está mostrando: 0 desde el catálogo y la cantidad de
// la línea desde el carrito, de modo que la propia reserva no se descuente dos veces.
func AvailableStock(stock, reservedTotal, ownReserved int) int {
	available := stock - reservedTotal + ownReserved
	if available < 0 {
		return 0
	}
	return available
}

// ReservedFor suma las cantidades reservadas para productID en items.
func ReservedFor(items []*entity.CartItem, productID string) int {
	total := 0
	for _, it := range items {
		if it != nil && it.ProductID == productID {
			total += it.Quantity
		}
	}
	return total
}
