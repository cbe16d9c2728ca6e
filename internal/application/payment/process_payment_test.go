package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

type recordingPublisher struct {
	events []payment.CompletedEvent
	err    error
}

func (p *recordingPublisher) PublishPaymentCompleted(_ context.Context, ev payment.CompletedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func setup(t *testing.T) (*payment.PaymentUseCase, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.New()
	pub := &recordingPublisher{}
	return payment.NewPaymentUseCase(store, pub, logger.Nop()), store, pub
}

func addProduct(t *testing.T, store *memory.Store, name string, stock int) *entity.Product {
	t.Helper()
	p, err := store.AddProduct(context.Background(), name, decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	return p
}

func TestProcessPayment_RebajaStockYPublicaEvento(t *testing.T) {
	uc, store, pub := setup(t)
	a := addProduct(t, store, "A", 5)
	b := addProduct(t, store, "B", 2)

	ok, err := uc.ProcessPayment(context.Background(), "cart-1", dto.PaymentRequest{Items: []dto.PaymentItemRequest{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 2},
	}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, store.StockOf(a.ID))
	assert.Equal(t, 0, store.StockOf(b.ID), "se puede agotar exactamente el stock")

	require.Len(t, pub.events, 1)
	assert.Equal(t, "cart-1", pub.events[0].CartID)
	assert.Len(t, pub.events[0].Items, 2)
	assert.NotEmpty(t, pub.events[0].EventID)
}

func TestProcessPayment_ListaVacia(t *testing.T) {
	uc, _, pub := setup(t)

	ok, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{})
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrEmptyPayment)
	assert.True(t, domain.IsClientError(err))
	assert.Empty(t, pub.events)
}

func TestProcessPayment_CantidadInvalida(t *testing.T) {
	uc, store, _ := setup(t)
	a := addProduct(t, store, "A", 5)

	_, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: a.ID, Quantity: -1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, store.StockOf(a.ID))
}

func TestProcessPayment_ProductoInexistente(t *testing.T) {
	uc, _, _ := setup(t)
	missing := "00000000-0000-0000-0000-000000000404"

	_, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: missing, Quantity: 1}}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), missing, "el mensaje nombra el producto faltante")
}

// Stock A=5, B=2; pagar [{A,3},{B,5}] falla en B y la transacción revierte la rebaja de A.
func TestProcessPayment_FaltanteRevierteItemsPrevios(t *testing.T) {
	uc, store, pub := setup(t)
	a := addProduct(t, store, "A", 5)
	b := addProduct(t, store, "Bolígrafo", 2)

	ok, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 5},
	}})
	assert.False(t, ok)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Bolígrafo")
	assert.Contains(t, err.Error(), "2", "el mensaje reporta el stock actual")

	assert.Equal(t, 5, store.StockOf(a.ID), "A no queda rebajado: el pago es todo o nada")
	assert.Equal(t, 2, store.StockOf(b.ID))
	assert.Empty(t, pub.events)
}

func TestProcessPayment_MismoProductoRepetidoAcumula(t *testing.T) {
	uc, store, _ := setup(t)
	a := addProduct(t, store, "A", 5)

	_, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: a.ID, Quantity: 3},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "la segunda línea ve el stock ya rebajado")
	assert.Equal(t, 5, store.StockOf(a.ID))
}

func TestProcessPayment_ProductoSinStock(t *testing.T) {
	uc, store, _ := setup(t)
	p := store.AddProductWithoutStock("Sin stock", decimal.NewFromInt(1))

	_, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: p.ID, Quantity: 1}}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "quedan 0")
}

func TestProcessPayment_FalloAlPublicarNoRevierte(t *testing.T) {
	uc, store, pub := setup(t)
	pub.err = errors.New("broker caído")
	a := addProduct(t, store, "A", 5)

	ok, err := uc.ProcessPayment(context.Background(), "c", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: a.ID, Quantity: 1}}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, store.StockOf(a.ID))
}
