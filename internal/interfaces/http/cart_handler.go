package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// CartHandler maneja las peticiones HTTP del carrito. El carrito lo resuelve CartSession.
type CartHandler struct {
	uc       *cart.CartUseCase
	sessions *auth.SessionUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase, sessions *auth.SessionUseCase) *CartHandler {
	return &CartHandler{uc: uc, sessions: sessions}
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.UserContext(), GetCartID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del carrito
// @Description  itemCount cuenta líneas distintas; totalItems cuenta unidades
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartSummaryResponse
// @Router       /api/cart/summary [get]
func (h *CartHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetCartSummary(c.UserContext(), GetCartID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Cotización del carrito en PDF
// @Tags         cart
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/cart/summary/pdf [get]
func (h *CartHandler) SummaryPDF(c *fiber.Ctx) error {
	doc, err := h.uc.SummaryPDF(c.UserContext(), GetCartID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cotizacion-carrito.pdf"`)
	return c.Send(doc)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Suma la cantidad a la línea existente; falla si supera el stock disponible
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := validateProductID(in.ProductID); err != nil {
		return err
	}
	if err := h.uc.AddToCart(c.UserContext(), GetCartID(c), in.ProductID, in.Quantity); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Producto agregado al carrito"})
}

// UpdateItem godoc
// @Summary      Actualizar cantidad de un producto del carrito
// @Description  quantity <= 0 elimina la línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                     true  "ID del producto"
// @Param        body       body  dto.UpdateCartItemRequest  true  "Nueva cantidad"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := validateProductID(productID); err != nil {
		return err
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := h.uc.UpdateCartItem(c.UserContext(), GetCartID(c), productID, in.Quantity); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Carrito actualizado"})
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := validateProductID(productID); err != nil {
		return err
	}
	if err := h.uc.RemoveFromCart(c.UserContext(), GetCartID(c), productID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado del carrito"})
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearCart(c.UserContext(), GetCartID(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Carrito vaciado"})
}

// StartSession godoc
// @Summary      Iniciar sesión de carrito
// @Description  Devuelve un token Bearer que identifica un carrito propio
// @Tags         cart
// @Produce      json
// @Success      201  {object}  dto.CartSessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/session [post]
func (h *CartHandler) StartSession(c *fiber.Ctx) error {
	out, err := h.sessions.StartCartSession()
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func validateProductID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: productId es requerido", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: productId inválido", domain.ErrInvalidInput)
	}
	return nil
}
