package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/metrics"
)

// Pinger lo cumplen *pgxpool.Pool y memory.Store (health check).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CartUC      *cart.CartUseCase
	PaymentUC   *payment.PaymentUseCase
	SessionUC   *auth.SessionUseCase
	Store       Pinger
	Metrics     *metrics.ServerMetrics // nil = sin /metrics
	Log         *logger.Logger
	AppName     string
	CORSOrigins string
	MaxPageSize int
}

// NewServer construye la app Fiber con ErrorHandler, middlewares, /health, /metrics y las rutas de la API.
func NewServer(deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(Observe(log.Component("http"), deps.Metrics))
	app.Use(recover.New())

	origins := deps.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Store != nil {
			if err := deps.Store.Ping(c.UserContext()); err != nil {
				log.Error().Err(err).Msg("health: store no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MaxPageSize)
	products.Get("/", productHandler.List)
	products.Get("/paged", productHandler.Paged)

	// Cart: sin token usa el carrito compartido
	cartHandler := NewCartHandler(deps.CartUC, deps.SessionUC)
	api.Post("/cart/session", cartHandler.StartSession)
	cartGroup := api.Group("/cart", CartSession(deps.SessionUC))
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Get("/summary", cartHandler.Summary)
	cartGroup.Get("/summary/pdf", cartHandler.SummaryPDF)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productId", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)

	// Payment
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.Post("/payment/process", CartSession(deps.SessionUC), paymentHandler.Process)
}
