package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedCartID identifica el carrito compartido que usan las peticiones sin sesión.
const SharedCartID = "shared"

// CartItem es una reserva (producto, cantidad) dentro de un carrito.
// Existe a lo sumo un CartItem por producto en cada carrito y Quantity siempre es > 0:
// una cantidad <= 0 elimina la línea en lugar de persistirse.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItemDetail es la línea del carrito unida con los datos del producto y su stock.
type CartItemDetail struct {
	CartItem
	ProductName   string
	Price         decimal.Decimal
	StockQuantity int
}

// PaymentItem es un par (producto, cantidad) de una solicitud de pago.
type PaymentItem struct {
	ProductID string
	Quantity  int
}
