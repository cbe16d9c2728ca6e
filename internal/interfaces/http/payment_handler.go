package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// PaymentHandler procesa pagos contra el stock vigente.
type PaymentHandler struct {
	uc *payment.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Process godoc
// @Summary      Procesar pago
// @Description  Rebaja el stock de todos los ítems en una transacción; el primer faltante revierte el pago completo
// @Tags         payment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentRequest  true  "Ítems a pagar"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment/process [post]
func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	ok, err := h.uc.ProcessPayment(c.UserContext(), GetCartID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.PaymentResponse{Success: ok, Message: "Pago procesado correctamente"})
}
