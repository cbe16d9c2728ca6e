package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity es la cantidad física (stocks.quantity); 0 si el producto no tiene fila de stock.
type Product struct {
	ID            string
	Name          string          // obligatorio, máx. 200 caracteres
	Price         decimal.Decimal // precio unitario, numeric(18,2)
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductNameMaxLen longitud máxima del nombre (columna varchar(200)).
const ProductNameMaxLen = 200
