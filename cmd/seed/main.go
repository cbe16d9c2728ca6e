// seed aplica el esquema y carga el catálogo de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (DATABASE_URL o DB_HOST, DB_PORT, etc.).
// No hace nada si el catálogo ya tiene productos.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error().Err(err).Msg("migración")
		os.Exit(1)
	}
	n, err := seed.Run(ctx, postgres.NewCatalogWriter(pool), seed.DemoCatalog, log)
	if err != nil {
		log.Error().Err(err).Int("inserted", n).Msg("seed")
		os.Exit(1)
	}
	log.Info().Int("inserted", n).Msg("seed terminado")
}
