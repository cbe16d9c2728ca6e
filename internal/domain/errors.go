package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para agregar detalle;
// la capa HTTP los clasifica con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrCartItemNotFound  = errors.New("el producto no está en el carrito")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrEmptyPayment      = errors.New("no hay productos para pagar")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
)

// IsClientError indica si err corresponde a una entrada inválida o a una regla de negocio
// visible para el cliente (responde 400).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyPayment) ||
		errors.Is(err, ErrInsufficientStock)
}

// IsNotFound indica si err corresponde a un recurso inexistente (responde 404).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCartItemNotFound)
}
