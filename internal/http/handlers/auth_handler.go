package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/domain"
	"dreamhome/internal/log"
	"dreamhome/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := h.Auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if errors.Is(err, domain.ErrEmailInUse) {
		log.Security(c, "auth.register.duplicate", nil)
		return detail(c, fiber.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return respondError(c, "auth.register.error", err)
	}
	log.Audit(c, "auth.register.success", map[string]any{"new_user_id": u.ID})
	return message(c, "User registered successfully")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	tok, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		log.Security(c, "auth.login.fail", nil)
		return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return respondError(c, "auth.login.error", err)
	}
	log.Audit(c, "auth.login.success", nil)
	return c.JSON(fiber.Map{"access_token": tok, "token_type": "bearer"})
}
