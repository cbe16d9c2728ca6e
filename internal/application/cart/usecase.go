package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// CartUseCase casos de uso del carrito: agregar, actualizar, quitar, vaciar y consultar.
// Agregar y actualizar validan contra el stock disponible dentro de una transacción.
type CartUseCase struct {
	txRunner TxRunner
	carts    repository.CartRepository
	pdf      SummaryPDFGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewCartUseCase construye el caso de uso. pdf puede ser nil si no se expone la cotización.
func NewCartUseCase(txRunner TxRunner, carts repository.CartRepository, pdf SummaryPDFGenerator, log *logger.Logger) *CartUseCase {
	return &CartUseCase{txRunner: txRunner, carts: carts, pdf: pdf, log: log, now: time.Now}
}

// AddToCart suma quantity a la línea del producto o crea la línea si no existe.
// Falla con ErrInsufficientStock si la línea resultante supera el stock disponible.
func (uc *CartUseCase) AddToCart(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return uc.txRunner.RunCart(ctx, func(
		cartRepo repository.CartRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: no existe el producto %s", domain.ErrNotFound, productID)
		}
		// Bloquea la fila de stock antes de leer las reservas
		stock, err := stockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		existing, err := cartRepo.GetByProduct(ctx, cartID, productID)
		if err != nil {
			return err
		}
		own := 0
		if existing != nil {
			own = existing.Quantity
		}
		if err := uc.checkAvailable(ctx, cartRepo, product, stock, own, own+quantity); err != nil {
			return err
		}

		now := uc.now()
		if existing != nil {
			existing.Quantity += quantity
			existing.UpdatedAt = now
			return cartRepo.UpdateQuantity(ctx, existing)
		}
		return cartRepo.Create(ctx, &entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
}

// UpdateCartItem reemplaza la cantidad de una línea existente; quantity <= 0 la elimina.
// Falla con ErrCartItemNotFound si el producto no está en el carrito.
func (uc *CartUseCase) UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) error {
	return uc.txRunner.RunCart(ctx, func(
		cartRepo repository.CartRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		existing, err := cartRepo.GetByProduct(ctx, cartID, productID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrCartItemNotFound, productID)
		}
		if quantity <= 0 {
			return cartRepo.Remove(ctx, cartID, productID)
		}
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: no existe el producto %s", domain.ErrNotFound, productID)
		}
		if err := uc.checkAvailable(ctx, cartRepo, product, stock, existing.Quantity, quantity); err != nil {
			return err
		}
		existing.Quantity = quantity
		existing.UpdatedAt = uc.now()
		return cartRepo.UpdateQuantity(ctx, existing)
	})
}

// checkAvailable verifica que la línea con reserva actual own pueda quedar en requested unidades.
func (uc *CartUseCase) checkAvailable(
	ctx context.Context,
	cartRepo repository.CartRepository,
	product *entity.Product,
	stock *entity.Stock,
	own, requested int,
) error {
	reserved, err := cartRepo.ReservedByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	physical := 0
	if stock != nil {
		physical = stock.Quantity
	}
	available := inventory.AvailableStock(physical, reserved[product.ID], own)
	if requested > available {
		uc.log.Warn().Str("product_id", product.ID).Int("requested", requested).Int("available", available).Msg("reserva rechazada por stock")
		return fmt.Errorf("%w: el producto %s solo tiene %d unidades disponibles (solicitadas %d)",
			domain.ErrInsufficientStock, product.Name, available, requested)
	}
	return nil
}

// RemoveFromCart elimina la línea del producto; no hace nada si no existe.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	return uc.carts.Remove(ctx, cartID, productID)
}

// ClearCart elimina todas las líneas del carrito.
func (uc *CartUseCase) ClearCart(ctx context.Context, cartID string) error {
	return uc.carts.Clear(ctx, cartID)
}

// GetCart devuelve las líneas del carrito con total por línea y techo de edición
// (AvailableStock incluye la propia reserva de la línea).
func (uc *CartUseCase) GetCart(ctx context.Context, cartID string) (*dto.CartResponse, error) {
	details, err := uc.carts.ListDetails(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("listar carrito: %w", err)
	}
	out := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(details)), GrandTotal: decimal.Zero}
	if len(details) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ProductID)
	}
	reserved, err := uc.carts.ReservedByProduct(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}

	for _, d := range details {
		total := d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
		out.Items = append(out.Items, dto.CartItemResponse{
			ProductID:      d.ProductID,
			ProductName:    d.ProductName,
			Price:          d.Price,
			Quantity:       d.Quantity,
			Total:          total,
			AvailableStock: inventory.AvailableStock(d.StockQuantity, reserved[d.ProductID], d.Quantity),
		})
		out.GrandTotal = out.GrandTotal.Add(total)
		out.TotalItems += d.Quantity
	}
	return out, nil
}

// GetCartSummary devuelve el carrito más ItemCount (líneas distintas, no unidades).
func (uc *CartUseCase) GetCartSummary(ctx context.Context, cartID string) (*dto.CartSummaryResponse, error) {
	c, err := uc.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &dto.CartSummaryResponse{CartResponse: *c, ItemCount: len(c.Items)}, nil
}

// SummaryPDF genera la cotización del carrito en PDF.
func (uc *CartUseCase) SummaryPDF(ctx context.Context, cartID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("cotización PDF no configurada")
	}
	summary, err := uc.GetCartSummary(ctx, cartID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.GenerateCartSummaryPDF(ctx, cartID, summary, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar cotización: %w", err)
	}
	return doc, nil
}
