package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// AuthHandlers exposes login and account endpoints.
type AuthHandlers struct {
	service *AuthService
}

func NewAuthHandlers(service *AuthService) *AuthHandlers {
	return &AuthHandlers{service: service}
}

// RegisterRoutes mounts /auth/login publicly and /auth/me behind the
// token middleware.
func (h *AuthHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	app.Post("/auth/login", h.login)
	app.Get("/auth/me", authMiddleware, h.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation)
	}
	if req.Email == "" || req.Password == "" {
		return errx.New("email and password are required", errx.TypeValidation)
	}

	resp, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandlers) me(c *fiber.Ctx) error {
	auth, ok := c.Locals("auth").(*kernel.AuthContext)
	if !ok || auth == nil {
		return ErrUnauthorized()
	}

	user, err := h.service.Me(c.Context(), auth)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
