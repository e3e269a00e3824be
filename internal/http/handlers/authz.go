package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "dreamhome/internal/log"
	"dreamhome/internal/services"
)

// RequireToken admits requests carrying a valid bearer token and stores the
// caller's id in Locals("user_id").
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		scheme, tok, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tok) == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return detail(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		claims, err := auth.Authenticate(strings.TrimSpace(tok))
		if err != nil {
			applog.Security(c, "auth.token.reject", map[string]any{"reason": err.Error()})
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return detail(c, fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
