package cart

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Las mutaciones del carrito bloquean la fila de stock del producto para serializar el
// ciclo leer-validar-escribir.
type TxRunner interface {
	RunCart(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SummaryPDFGenerator genera la cotización del carrito en PDF.
type SummaryPDFGenerator interface {
	GenerateCartSummaryPDF(ctx context.Context, cartID string, summary *dto.CartSummaryResponse, generatedAt time.Time) ([]byte, error)
}
