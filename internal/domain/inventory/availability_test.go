package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
)

// Catálogo: stock 10 con una reserva de 4 → quedan 6 por agregar.
func TestAvailableStock_Catalogo(t *testing.T) {
	assert.Equal(t, 6, inventory.AvailableStock(10, 4, 0))
}

// Carrito: la línea que reserva 4 ve su propia reserva como disponible → techo de edición 10.
func TestAvailableStock_LineaDelCarrito(t *testing.T) {
	assert.Equal(t, 10, inventory.AvailableStock(10, 4, 4))
}

// Reservas de otros carritos sí cuentan contra la línea propia.
func TestAvailableStock_ReservasAjenas(t *testing.T) {
	// stock 10, reservado total 7 (4 propias + 3 ajenas)
	assert.Equal(t, 7, inventory.AvailableStock(10, 7, 4))
}

func TestAvailableStock_NuncaNegativo(t *testing.T) {
	assert.Equal(t, 0, inventory.AvailableStock(3, 8, 0))
	assert.Equal(t, 0, inventory.AvailableStock(0, 0, 0))
	assert.Equal(t, 0, inventory.AvailableStock(-2, 0, 0), "stock negativo se reporta como 0")
}

func TestReservedFor_SumaSoloElProducto(t *testing.T) {
	items := []*entity.CartItem{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 5},
		{ProductID: "a", Quantity: 3},
		nil,
	}
	assert.Equal(t, 5, inventory.ReservedFor(items, "a"))
	assert.Equal(t, 5, inventory.ReservedFor(items, "b"))
	assert.Equal(t, 0, inventory.ReservedFor(items, "c"))
	assert.Equal(t, 0, inventory.ReservedFor(nil, "a"))
}
