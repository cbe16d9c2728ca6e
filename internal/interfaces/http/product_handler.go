package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

// ProductHandler maneja las peticiones HTTP del catálogo (público).
type ProductHandler struct {
	uc          *usecase.ProductUseCase
	maxPageSize int
}

// NewProductHandler construye el handler. pageSize se limita a maxPageSize.
func NewProductHandler(uc *usecase.ProductUseCase, maxPageSize int) *ProductHandler {
	return &ProductHandler{uc: uc, maxPageSize: maxPageSize}
}

// List godoc
// @Summary      Listar productos
// @Description  stockQuantity es el stock disponible (descontando reservas en carritos)
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Paged godoc
// @Summary      Listar productos paginados
// @Tags         products
// @Produce      json
// @Param        pageNumber  query  int  false  "Página (desde 1)"  default(1)
// @Param        pageSize    query  int  false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.PagedProductsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/paged [get]
func (h *ProductHandler) Paged(c *fiber.Ctx) error {
	pageNumber, err := queryInt(c, "pageNumber", defaultPageNumber)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil {
		return err
	}
	if h.maxPageSize > 0 && pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}
	out, err := h.uc.GetPagedProducts(c.UserContext(), pageNumber, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// queryInt lee un entero de la query; ausente devuelve def, no numérico es ErrInvalidInput.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser un entero", domain.ErrInvalidInput, key)
	}
	return n, nil
}
