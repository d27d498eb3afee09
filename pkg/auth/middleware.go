package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// TokenMiddleware validates bearer tokens and injects the auth context.
type TokenMiddleware struct {
	tokenService TokenService
}

func NewTokenMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Authenticate validates the Authorization header and stores a
// kernel.AuthContext under the "auth" local.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrUnauthorized()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return ErrInvalidToken()
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals("auth", &kernel.AuthContext{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Email:    claims.Email,
			Name:     claims.Name,
		})
		return c.Next()
	}
}
