package handler

import (
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/middleware"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/util"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and the profile endpoint.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}
	if err := util.ValidateStruct(req); err != nil {
		return err
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("リクエストの形式が正しくありません")
	}
	if err := util.ValidateStruct(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	studentID, _ := c.Locals(middleware.StudentIDKey).(string)
	resp, err := h.authService.GetProfile(c.Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
