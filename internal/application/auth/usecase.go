package auth

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionUseCase emite y valida sesiones de carrito. Cada sesión identifica un carrito propio;
// sin sesión se usa el carrito compartido.
type SessionUseCase struct {
	jwtCfg JWTConfig
}

// NewSessionUseCase construye el caso de uso de sesiones.
func NewSessionUseCase(jwtCfg JWTConfig) *SessionUseCase {
	return &SessionUseCase{jwtCfg: jwtCfg}
}

// Enabled indica si hay secret configurado para firmar sesiones.
func (uc *SessionUseCase) Enabled() bool {
	return uc.jwtCfg.Secret != ""
}

// StartCartSession crea un carrito nuevo (UUID) y devuelve el token firmado que lo identifica.
func (uc *SessionUseCase) StartCartSession() (*dto.CartSessionResponse, error) {
	if !uc.Enabled() {
		return nil, fmt.Errorf("%w: sesiones de carrito deshabilitadas (SESSION_SECRET vacío)", domain.ErrInvalidInput)
	}
	cartID := uuid.New().String()
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, cartID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token de sesión: %w", err)
	}
	return &dto.CartSessionResponse{Token: token, CartID: cartID, ExpiresAt: exp}, nil
}

// ResolveCartID valida el token y devuelve el carrito de la sesión.
func (uc *SessionUseCase) ResolveCartID(token string) (string, error) {
	if !uc.Enabled() {
		return "", fmt.Errorf("%w: sesiones de carrito deshabilitadas", domain.ErrUnauthorized)
	}
	cartID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: token de sesión inválido o expirado", domain.ErrUnauthorized)
	}
	return cartID, nil
}
