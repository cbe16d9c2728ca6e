package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const internalMessage = "error interno del servidor"

// ErrorHandler traduce los errores devueltos por los handlers a {statusCode, code, message, timestamp}.
// Los errores de dominio se clasifican con errors.Is; lo no clasificado responde 500 sin detalle y se registra.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message := classify(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		return writeError(c, status, code, message)
	}
}

func classify(err error) (status int, code, message string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, "INTERNAL", internalMessage
		}
		return fe.Code, "HTTP_ERROR", fe.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrCartItemNotFound):
		return fiber.StatusNotFound, "CART_ITEM_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrEmptyPayment):
		return fiber.StatusBadRequest, "EMPTY_PAYMENT", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	}
	return fiber.StatusInternalServerError, "INTERNAL", internalMessage
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	})
}
