// Package seed carga un catálogo de demostración en un store vacío.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// Writer lo cumplen postgres.CatalogWriter y memory.Store.
type Writer interface {
	AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*entity.Product, error)
	Count(ctx context.Context) (int, error)
}

// Item producto del catálogo de demostración.
type Item struct {
	Name  string
	Price string
	Stock int
}

// DemoCatalog productos de papelería con stock inicial.
var DemoCatalog = []Item{
	{"Agenda 2026", "32000.00", 12},
	{"Borrador de nata", "900.00", 200},
	{"Bolígrafo azul", "1500.00", 150},
	{"Calculadora científica", "85000.00", 8},
	{"Carpeta AZ oficio", "14500.00", 25},
	{"Colores x12", "12500.00", 40},
	{"Cuaderno cuadriculado 100 hojas", "6800.00", 60},
	{"Cuaderno rayado 100 hojas", "6800.00", 55},
	{"Grapadora metálica", "23000.00", 10},
	{"Lápiz HB", "1200.00", 300},
	{"Marcador permanente", "3500.00", 80},
	{"Mochila escolar", "98000.00", 6},
	{"Pegante en barra", "4200.00", 70},
	{"Regla 30 cm", "2500.00", 90},
	{"Resaltador amarillo", "2900.00", 100},
	{"Resma papel carta", "21000.00", 30},
	{"Sacapuntas doble", "1800.00", 120},
	{"Tijeras punta roma", "5600.00", 35},
}

// Run inserta items si el catálogo está vacío. Devuelve cuántos productos insertó.
func Run(ctx context.Context, w Writer, items []Item, log *logger.Logger) (int, error) {
	n, err := w.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int("products", n).Msg("catálogo ya cargado; seed omitido")
		return 0, nil
	}
	for i, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return i, fmt.Errorf("precio inválido para %q: %w", it.Name, err)
		}
		if _, err := w.AddProduct(ctx, it.Name, price, it.Stock); err != nil {
			return i, fmt.Errorf("insertar %q: %w", it.Name, err)
		}
	}
	log.Info().Int("products", len(items)).Msg("catálogo de demostración cargado")
	return len(items), nil
}
