package entity

import "time"

// Stock representa la cantidad disponible físicamente de un producto (relación 1:1 con Product).
// Solo el pago la modifica y nunca debe quedar por debajo de cero.
type Stock struct {
	ID        string
	ProductID string
	Quantity  int
	UpdatedAt time.Time
}

// CanCover indica si el stock alcanza para la cantidad solicitada.
func (s *Stock) CanCover(quantity int) bool {
	return s != nil && s.Quantity >= quantity
}
