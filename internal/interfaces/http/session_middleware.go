package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// LocalCartID key en Fiber Locals para el carrito de la petición.
const LocalCartID = "cart_id"

// CartSession resuelve el carrito de la petición. Sin Authorization se usa el carrito compartido;
// con "Bearer <token>" se usa el carrito de la sesión y un token inválido responde 401.
func CartSession(sessions *auth.SessionUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(LocalCartID, entity.SharedCartID)
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return fmt.Errorf("%w: formato: Bearer <token>", domain.ErrUnauthorized)
		}
		cartID, err := sessions.ResolveCartID(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		c.Locals(LocalCartID, cartID)
		return c.Next()
	}
}

// GetCartID devuelve el carrito del contexto (después de CartSession).
func GetCartID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCartID).(string)
	if s == "" {
		return entity.SharedCartID
	}
	return s
}
