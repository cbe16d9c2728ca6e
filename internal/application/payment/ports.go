package payment

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta el pago completo en una sola transacción: si un ítem falla,
// ninguna rebaja de stock queda aplicada.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// CompletedEvent se publica después de confirmar un pago.
type CompletedEvent struct {
	EventID    string      `json:"eventId"`
	CartID     string      `json:"cartId"`
	Items      []EventItem `json:"items"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// EventItem unidades rebajadas de un producto.
type EventItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// EventPublisher publica eventos de pago (Kafka en producción).
type EventPublisher interface {
	PublishPaymentCompleted(ctx context.Context, ev CompletedEvent) error
}

// NoopPublisher descarta los eventos (sin brokers configurados).
type NoopPublisher struct{}

func (NoopPublisher) PublishPaymentCompleted(context.Context, CompletedEvent) error { return nil }
