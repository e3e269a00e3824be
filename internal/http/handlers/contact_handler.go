package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "dreamhome/internal/log"
	"dreamhome/internal/services"
)

type ContactHandler struct {
	Contact *services.ContactService
}

type contactRequest struct {
	Name       string `json:"name"`
	ContactNo  string `json:"contact_no"`
	Message    string `json:"message"`
	PropertyID string `json:"property_id"`
}

func (h *ContactHandler) ContactOwner(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	id, err := h.Contact.Submit(c.UserContext(), services.ContactInput{
		Name: req.Name, ContactNo: req.ContactNo, Message: req.Message, PropertyID: req.PropertyID,
	})
	if err != nil {
		return respondError(c, "contact.submit.error", err)
	}
	applog.Info(c, "contact.submit", map[string]any{"query_id": id, "property_id": req.PropertyID})
	return c.JSON(fiber.Map{"message": "Query submitted successfully", "query_id": id})
}

type inquiryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ContactNo string `json:"contact_no"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// Inbox serves GET /api/user/properties/:id/inquiries for the listing owner.
func (h *ContactHandler) Inbox(c *fiber.Ctx) error {
	qs, err := h.Contact.ForOwner(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return respondError(c, "contact.inbox.error", err)
	}
	out := make([]inquiryView, 0, len(qs))
	for _, q := range qs {
		out = append(out, inquiryView{
			ID: q.ID, Name: q.Name, ContactNo: q.ContactNo, Message: q.Message,
			CreatedAt: q.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
