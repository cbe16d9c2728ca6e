package dto

import "github.com/shopspring/decimal"

// ProductResponse salida de un producto del catálogo.
// StockQuantity es el stock disponible (físico menos reservado en carritos), no el físico.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

// PagedProductsResponse lista paginada de productos.
type PagedProductsResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalItems int               `json:"totalItems"`
	PageNumber int               `json:"pageNumber"`
	PageSize   int               `json:"pageSize"`
}
