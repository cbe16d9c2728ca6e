package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// PaymentUseCase valida una compra contra el stock vigente y rebaja el stock de cada ítem.
// No toca el carrito: vaciarlo después del pago es responsabilidad del llamador.
type PaymentUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	log       *logger.Logger
}

// NewPaymentUseCase construye el caso de uso. publisher nil equivale a NoopPublisher.
func NewPaymentUseCase(txRunner TxRunner, publisher EventPublisher, log *logger.Logger) *PaymentUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &PaymentUseCase{txRunner: txRunner, publisher: publisher, log: log}
}

// ProcessPayment procesa los ítems en el orden recibido dentro de una transacción:
// bloquea el stock (SELECT FOR UPDATE), verifica Stock >= Cantidad y rebaja. El primer ítem
// que falla aborta el pago y revierte las rebajas anteriores.
func (uc *PaymentUseCase) ProcessPayment(ctx context.Context, cartID string, in dto.PaymentRequest) (bool, error) {
	if len(in.Items) == 0 {
		return false, domain.ErrEmptyPayment
	}
	items := make([]entity.PaymentItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return false, fmt.Errorf("%w: cada ítem requiere productId y cantidad mayor a cero", domain.ErrInvalidInput)
		}
		items = append(items, entity.PaymentItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	err := uc.txRunner.RunPayment(ctx, func(
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, it := range items {
			if err := uc.debit(ctx, stockRepo, productRepo, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if domain.IsClientError(err) || domain.IsNotFound(err) {
			uc.log.Warn().Err(err).Int("items", len(items)).Msg("pago rechazado")
		}
		return false, err
	}

	evItems := make([]EventItem, 0, len(items))
	for _, it := range items {
		evItems = append(evItems, EventItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	ev := CompletedEvent{EventID: uuid.New().String(), CartID: cartID, Items: evItems, OccurredAt: time.Now().UTC()}
	if err := uc.publisher.PublishPaymentCompleted(ctx, ev); err != nil {
		// el pago ya está confirmado; el evento perdido solo se registra
		uc.log.Error().Err(err).Str("event_id", ev.EventID).Msg("publicar evento de pago")
	}
	uc.log.Info().Str("event_id", ev.EventID).Str("cart_id", cartID).Int("items", len(items)).Msg("pago procesado")
	return true, nil
}

func (uc *PaymentUseCase) debit(
	ctx context.Context,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	it entity.PaymentItem,
) error {
	product, err := productRepo.GetByID(ctx, it.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: no existe el producto %s", domain.ErrNotFound, it.ProductID)
	}
	stock, err := stockRepo.GetForUpdate(ctx, it.ProductID)
	if err != nil {
		return err
	}
	if !stock.CanCover(it.Quantity) {
		current := 0
		if stock != nil {
			current = stock.Quantity
		}
		return fmt.Errorf("%w: el producto %s no tiene stock suficiente (quedan %d)",
			domain.ErrInsufficientStock, product.Name, current)
	}
	stock.Quantity -= it.Quantity
	stock.UpdatedAt = time.Now()
	return stockRepo.Update(ctx, stock)
}
