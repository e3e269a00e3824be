package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/services"
)

type SearchHandler struct {
	Props *services.PropertyService
}

// Filtered serves GET /api/properties/filtered. Unknown query parameters
// are ignored.
func (h *SearchHandler) Filtered(c *fiber.Ctx) error {
	out, err := h.Props.Filtered(c.UserContext(), c.Queries())
	if err != nil {
		return respondError(c, "property.search.error", err)
	}
	return c.JSON(out)
}
