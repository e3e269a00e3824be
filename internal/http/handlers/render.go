package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/domain"
	applog "dreamhome/internal/log"
)

// detail writes the JSON error body every endpoint uses.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

// respondError maps service errors onto HTTP responses. Anything unexpected
// is logged in full and answered with an opaque 500.
func respondError(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	var se *domain.StorageError
	switch {
	case errors.As(err, &ve):
		return detail(c, fiber.StatusBadRequest, ve.Reason)
	case errors.Is(err, domain.ErrUserNotFound):
		return detail(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrPropertyNotFound):
		return detail(c, fiber.StatusNotFound, "Property not found")
	case errors.Is(err, domain.ErrNotFound):
		return detail(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrTokenInvalid):
		return detail(c, fiber.StatusUnauthorized, "Invalid token")
	case errors.Is(err, domain.ErrEmailInUse):
		return detail(c, fiber.StatusBadRequest, "Email already in use")
	case errors.Is(err, domain.ErrWrongPassword):
		return detail(c, fiber.StatusBadRequest, "Current password is incorrect")
	case errors.As(err, &se):
		applog.Error(c, action, err, nil)
		return detail(c, fiber.StatusInternalServerError, "Failed to store media")
	}
	applog.Error(c, action, err, nil)
	return detail(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is installed as fiber.Config.ErrorHandler. Framework errors
// below 500 keep their status; everything else is hidden behind a generic
// message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			applog.Security(c, "request.too_large", nil)
		}
		return detail(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return detail(c, fiber.StatusInternalServerError, "Internal server error")
}
