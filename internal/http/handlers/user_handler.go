package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/log"
	"dreamhome/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	u, err := h.Users.Profile(c.UserContext(), userID(c))
	if err != nil {
		return respondError(c, "user.profile.error", err)
	}
	return c.JSON(fiber.Map{"name": u.Name, "email": u.Email})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Users.UpdateProfile(c.UserContext(), userID(c), req.Name, req.Email); err != nil {
		return respondError(c, "user.update.error", err)
	}
	log.Audit(c, "user.update", nil)
	return message(c, "Profile updated successfully")
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Users.ChangePassword(c.UserContext(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, "user.password.error", err)
	}
	log.Audit(c, "user.password.change", nil)
	return message(c, "Password changed successfully")
}
