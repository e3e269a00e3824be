package handlers

import (
	"io"
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/listing"
	"dreamhome/internal/log"
	"dreamhome/internal/services"
)

type PropertyHandler struct {
	Props *services.PropertyService
}

func (h *PropertyHandler) List(c *fiber.Ctx) error {
	out, err := h.Props.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, "property.list.error", err)
	}
	return c.JSON(out)
}

func (h *PropertyHandler) recent(fam listing.Family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.Props.RecentByFamily(c.UserContext(), fam)
		if err != nil {
			return respondError(c, "property.recent.error", err)
		}
		return c.JSON(out)
	}
}

func (h *PropertyHandler) Offices() fiber.Handler { return h.recent(listing.Office) }

func (h *PropertyHandler) Land() fiber.Handler { return h.recent(listing.Land) }

func (h *PropertyHandler) Mine(c *fiber.Ctx) error {
	out, err := h.Props.ByOwner(c.UserContext(), userID(c))
	if err != nil {
		return respondError(c, "property.mine.error", err)
	}
	return c.JSON(out)
}

// Create accepts multipart/form-data with a formData JSON field and one file
// field per media category.
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "Expected multipart form data")
	}
	raw := form.Value["formData"]
	if len(raw) == 0 {
		return detail(c, fiber.StatusBadRequest, "formData is required")
	}

	id, err := h.Props.Create(c.UserContext(), userID(c), []byte(raw[0]), uploadsOf(form))
	if err != nil {
		return respondError(c, "property.create.error", err)
	}
	log.Audit(c, "property.create", map[string]any{"property_id": id, "files": countFiles(form)})
	return c.JSON(fiber.Map{"status": "success", "property_id": id})
}

// uploadsOf lists files in category order, then videos, then any other
// field so the service can reject it.
func uploadsOf(form *multipart.Form) []services.Upload {
	order := append(append([]string{}, listing.CategoryKeys...), services.VideosField)
	known := map[string]bool{}
	for _, k := range order {
		known[k] = true
	}
	var extra []string
	for k := range form.File {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	var out []services.Upload
	for _, field := range append(order, extra...) {
		for _, fh := range form.File[field] {
			fh := fh // per-iteration copy; go.mod targets go1.21 loop semantics
			out = append(out, services.Upload{
				Field:       field,
				Filename:    fh.Filename,
				Size:        fh.Size,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Open: func() (io.ReadCloser, error) {
					f, err := fh.Open()
					if err != nil {
						return nil, err
					}
					return f, nil
				},
			})
		}
	}
	return out
}

func countFiles(form *multipart.Form) int {
	n := 0
	for _, fs := range form.File {
		n += len(fs)
	}
	return n
}
