package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSessionSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	app   *fiber.App
	store *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	log := logger.Nop()
	order, err := usecase.NewNameOrder("")
	require.NoError(t, err)

	app := apphttp.NewServer(apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Carts(), order, log),
		CartUC:      cart.NewCartUseCase(store, store.Carts(), pdf.NewCartQuoteGenerator("Tienda"), log),
		PaymentUC:   payment.NewPaymentUseCase(store, nil, log),
		SessionUC:   auth.NewSessionUseCase(auth.JWTConfig{Secret: testSessionSecret, ExpMinutes: 60, Issuer: "tienda-test"}),
		Store:       store,
		Metrics:     metrics.NewServerMetrics("tienda-test"),
		Log:         log,
		AppName:     "tienda-test",
		MaxPageSize: 100,
	})
	return &testEnv{app: app, store: store}
}

func (e *testEnv) product(t *testing.T, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p, err := e.store.AddProduct(context.Background(), name, decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	return p
}

// do lanza la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_ListaOrdenadaConStockDisponible(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)
	env.product(t, "Agenda", 32000, 3)

	status, _ := env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 4})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]dto.ProductResponse](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "Agenda", list[0].Name)
	assert.Equal(t, "Cuaderno", list[1].Name)
	assert.Equal(t, 6, list[1].StockQuantity, "10 físicas - 4 reservadas")
	assert.True(t, decimal.NewFromInt(5000).Equal(list[1].Price))
}

func TestProducts_Paginado(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 25; i++ {
		env.product(t, fmt.Sprintf("Producto %02d", i), int64(i), 1)
	}

	status, body := env.do(t, http.MethodGet, "/api/products/paged?pageNumber=2&pageSize=10", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[dto.PagedProductsResponse](t, body)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "Producto 11", page.Items[0].Name)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	for _, k := range []string{"items", "totalItems", "pageNumber", "pageSize"} {
		assert.Contains(t, raw, k, "el cuerpo usa camelCase")
	}
}

func TestProducts_PaginadoPorDefectoYTope(t *testing.T) {
	env := newTestEnv(t)
	env.product(t, "Único", 1, 1)

	status, body := env.do(t, http.MethodGet, "/api/products/paged", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[dto.PagedProductsResponse](t, body)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)

	_, body = env.do(t, http.MethodGet, "/api/products/paged?pageSize=5000", nil)
	assert.Equal(t, 100, decode[dto.PagedProductsResponse](t, body).PageSize)
}

func TestProducts_PaginadoInvalido(t *testing.T) {
	env := newTestEnv(t)
	for _, q := range []string{"pageNumber=0", "pageSize=0", "pageNumber=-3", "pageNumber=abc"} {
		status, body := env.do(t, http.MethodGet, "/api/products/paged?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, status, q)
		errBody := decode[dto.ErrorResponse](t, body)
		assert.Equal(t, http.StatusBadRequest, errBody.StatusCode)
		assert.False(t, errBody.Timestamp.IsZero())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_FlujoCompleto(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)
	q := env.product(t, "Lápiz", 1200, 50)

	status, body := env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 3})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotEmpty(t, decode[dto.MessageResponse](t, body).Message)
	env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 2})
	env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: q.ID, Quantity: 10})

	status, body = env.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, status)
	c := decode[dto.CartResponse](t, body)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Cuaderno", c.Items[0].ProductName)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 10, c.Items[0].AvailableStock)
	assert.True(t, decimal.NewFromInt(25000+12000).Equal(c.GrandTotal))
	assert.Equal(t, 15, c.TotalItems)

	status, body = env.do(t, http.MethodGet, "/api/cart/summary", nil)
	require.Equal(t, http.StatusOK, status)
	s := decode[dto.CartSummaryResponse](t, body)
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, 15, s.TotalItems)

	status, _ = env.do(t, http.MethodPut, "/api/cart/items/"+p.ID, dto.UpdateCartItemRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodDelete, "/api/cart/items/"+q.ID, nil)
	require.Equal(t, http.StatusOK, status)

	_, body = env.do(t, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decode[dto.CartResponse](t, body).Items)
}

func TestCart_ActualizarInexistenteDevuelve404(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)

	status, body := env.do(t, http.MethodPut, "/api/cart/items/"+p.ID, dto.UpdateCartItemRequest{Quantity: 5})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", decode[dto.ErrorResponse](t, body).Code)
}

func TestCart_ValidacionesDeEntrada(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 2)

	status, _ := env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: "no-es-uuid", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: "00000000-0000-0000-0000-000000000404", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 3})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, body).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCart_VaciarCarrito(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)
	env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 3})

	status, _ := env.do(t, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, status)

	_, body := env.do(t, http.MethodGet, "/api/cart", nil)
	c := decode[dto.CartResponse](t, body)
	assert.Empty(t, c.Items)
	assert.True(t, c.GrandTotal.IsZero())
}

func TestCart_SesionAislaCarritos(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)

	status, body := env.do(t, http.MethodPost, "/api/cart/session", nil)
	require.Equal(t, http.StatusCreated, status)
	session := decode[dto.CartSessionResponse](t, body)
	require.NotEmpty(t, session.Token)
	bearer := "Bearer " + session.Token

	status, _ = env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 4}, "Authorization", bearer)
	require.Equal(t, http.StatusOK, status)

	_, body = env.do(t, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decode[dto.CartResponse](t, body).Items, "el carrito compartido no ve la sesión")

	_, body = env.do(t, http.MethodGet, "/api/cart", nil, "Authorization", bearer)
	assert.Len(t, decode[dto.CartResponse](t, body).Items, 1)
	assert.Equal(t, 1, env.store.CartLines(session.CartID))

	_, body = env.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, 6, decode[[]dto.ProductResponse](t, body)[0].StockQuantity, "las reservas de todas las sesiones cuentan")
}

func TestCart_TokenInvalidoDevuelve401(t *testing.T) {
	env := newTestEnv(t)
	for _, h := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		status, body := env.do(t, http.MethodGet, "/api/cart", nil, "Authorization", h)
		assert.Equal(t, http.StatusUnauthorized, status, h)
		assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, body).Code)
	}
}

func TestCart_CotizacionPDF(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Cuaderno", 5000, 10)
	env.do(t, http.MethodPost, "/api/cart/items", dto.AddToCartRequest{ProductID: p.ID, Quantity: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/summary/pdf", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	doc, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago
// ──────────────────────────────────────────────────────────────────────────────

func TestPayment_Exitoso(t *testing.T) {
	env := newTestEnv(t)
	a := env.product(t, "A", 10, 5)

	status, body := env.do(t, http.MethodPost, "/api/payment/process", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: a.ID, Quantity: 2}}})
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode[dto.PaymentResponse](t, body)
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.Message)
	assert.Equal(t, 3, env.store.StockOf(a.ID))
}

func TestPayment_FaltanteRevierteYDevuelve400(t *testing.T) {
	env := newTestEnv(t)
	a := env.product(t, "A", 10, 5)
	b := env.product(t, "B", 10, 2)

	status, body := env.do(t, http.MethodPost, "/api/payment/process", dto.PaymentRequest{Items: []dto.PaymentItemRequest{
		{ProductID: a.ID, Quantity: 3},
		{ProductID: b.ID, Quantity: 5},
	}})
	assert.Equal(t, http.StatusBadRequest, status)
	errBody := decode[dto.ErrorResponse](t, body)
	assert.Contains(t, errBody.Message, "B")
	assert.Contains(t, errBody.Message, "2")
	assert.Equal(t, 5, env.store.StockOf(a.ID))
}

func TestPayment_ListaVaciaYProductoInexistente(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/payment/process", dto.PaymentRequest{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMPTY_PAYMENT", decode[dto.ErrorResponse](t, body).Code)

	status, _ = env.do(t, http.MethodPost, "/api/payment/process", dto.PaymentRequest{Items: []dto.PaymentItemRequest{{ProductID: "00000000-0000-0000-0000-000000000404", Quantity: 1}}})
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYMetrics(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"ok"`)

	env.do(t, http.MethodGet, "/api/products", nil)
	status, body = env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "tienda_tienda_test_http_requests_total")
}

func TestRutaInexistenteDevuelve404(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/api/nada", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, decode[dto.ErrorResponse](t, body).StatusCode)
}
