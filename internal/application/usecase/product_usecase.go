package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ProductUseCase listado del catálogo con stock disponible neto de las reservas en carritos.
type ProductUseCase struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	order    NameOrder
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, carts repository.CartRepository, order NameOrder, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, carts: carts, order: order, log: log}
}

// GetAllProducts lista todos los productos ordenados por nombre.
func (uc *ProductUseCase) GetAllProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	reserved, err := uc.carts.ReservedByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}
	uc.log.Info().Int("products", len(list)).Msg("catálogo completo")
	return uc.toResponses(list, reserved), nil
}

// GetPagedProducts lista una página del catálogo (pageNumber desde 1).
// La ventana se toma sobre los productos ordenados por nombre en el repositorio.
func (uc *ProductUseCase) GetPagedProducts(ctx context.Context, pageNumber, pageSize int) (*dto.PagedProductsResponse, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: pageNumber y pageSize deben ser >= 1", domain.ErrInvalidInput)
	}
	page := dto.PageRequest{PageNumber: pageNumber, PageSize: pageSize}
	list, total, err := uc.products.ListPaged(ctx, pageSize, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar productos paginados: %w", err)
	}

	reserved := map[string]int{}
	if len(list) > 0 {
		ids := make([]string, 0, len(list))
		for _, p := range list {
			ids = append(ids, p.ID)
		}
		if reserved, err = uc.carts.ReservedByProduct(ctx, ids...); err != nil {
			return nil, fmt.Errorf("listar reservas: %w", err)
		}
	}
	uc.log.Info().Int("page", pageNumber).Int("size", pageSize).Int("products", len(list)).Int("total", total).Msg("catálogo paginado")

	return &dto.PagedProductsResponse{
		Items:      uc.toResponses(list, reserved),
		TotalItems: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

func (uc *ProductUseCase) toResponses(list []*entity.Product, reserved map[string]int) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: inventory.AvailableStock(p.StockQuantity, reserved[p.ID], 0),
		})
	}
	sortByName(uc.order, items,
		func(p dto.ProductResponse) string { return p.Name },
		func(p dto.ProductResponse) string { return p.ID },
	)
	return items
}
