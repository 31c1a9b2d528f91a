package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Struct(&req); len(errs) > 0 {
		return dto.ValidationFailed(c, errs)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.RecordLogin(false)
			return dto.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	metrics.RecordLogin(true)
	return dto.OK(c, "Login successful", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return dto.Fail(c, fiber.StatusBadRequest, "Refresh token is required")
	}

	resp, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return dto.Fail(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}
		return err
	}

	return dto.OK(c, "", resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return fiber.ErrUnauthorized
	}

	user, err := h.authService.Me(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return dto.Fail(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return dto.OK(c, "", dto.MeResponse{User: *user})
}

// Logout has nothing to revoke; tokens are stateless and the client discards them.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return dto.OK(c, "Logout successful", nil)
}
