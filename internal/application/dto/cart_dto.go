package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest entrada para agregar un producto al carrito.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest entrada para reemplazar la cantidad de una línea (<= 0 la elimina).
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse línea del carrito con total y techo de edición (AvailableStock).
type CartItemResponse struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	AvailableStock int             `json:"availableStock"`
}

// CartResponse carrito completo. TotalItems cuenta unidades, no líneas.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	GrandTotal decimal.Decimal    `json:"grandTotal"`
	TotalItems int                `json:"totalItems"`
}

// CartSummaryResponse carrito más ItemCount (número de líneas distintas).
type CartSummaryResponse struct {
	CartResponse
	ItemCount int `json:"itemCount"`
}

// CartSessionResponse token de una sesión de carrito nueva.
type CartSessionResponse struct {
	Token     string    `json:"token"`
	CartID    string    `json:"cartId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
