package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/docs"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	infrakafka "github.com/jhoicas/Tienda-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/metrics"
)

// store agrupa los adaptadores de persistencia según STORE_DRIVER.
type store struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	cartTx   cart.TxRunner
	payTx    payment.TxRunner
	pinger   httpRouter.Pinger
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	// Precios como número JSON (no string)
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.App.StoreDriver).Msg("abrir store")
	}
	defer st.close()

	order, err := usecase.NewNameOrder(cfg.Catalog.Collation)
	if err != nil {
		log.Fatal().Err(err).Msg("CATALOG_COLLATION")
	}

	var publisher payment.EventPublisher = payment.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.PaymentTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.PaymentTopic).Msg("eventos de pago habilitados")
	}

	productUC := usecase.NewProductUseCase(st.products, st.carts, order, log.Component("catalog"))
	cartUC := cart.NewCartUseCase(st.cartTx, st.carts, infrapdf.NewCartQuoteGenerator(cfg.App.Name), log.Component("cart"))
	paymentUC := payment.NewPaymentUseCase(st.payTx, publisher, log.Component("payment"))
	sessionUC := auth.NewSessionUseCase(auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})
	if !sessionUC.Enabled() {
		log.Warn().Msg("SESSION_SECRET vacío: solo carrito compartido")
	}

	app := httpRouter.NewServer(httpRouter.RouterDeps{
		ProductUC:   productUC,
		CartUC:      cartUC,
		PaymentUC:   paymentUC,
		SessionUC:   sessionUC,
		Store:       st.pinger,
		Metrics:     metrics.NewServerMetrics(cfg.App.Name),
		Log:         log,
		AppName:     cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		MaxPageSize: cfg.Catalog.MaxPageSize,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.App.StoreDriver == "memory" {
		mem := memory.New()
		if _, err := seed.Run(ctx, mem, seed.DemoCatalog, log.Component("seed")); err != nil {
			return nil, err
		}
		return &store{
			products: mem.Products(),
			carts:    mem.Carts(),
			cartTx:   mem,
			payTx:    mem,
			pinger:   mem,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	txRunner := postgres.NewTxRunner(pool)
	return &store{
		products: postgres.NewProductRepository(pool),
		carts:    postgres.NewCartRepository(pool),
		cartTx:   txRunner,
		payTx:    txRunner,
		pinger:   pool,
		close:    pool.Close,
	}, nil
}
