package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "dreamhome/internal/log"
)

type AppOptions struct {
	BodyLimitMB int
	CORSOrigins string
	// UploadDir is served at /uploads when set (local blob backend).
	UploadDir string
	// LoginAttempts per IP per 10 minutes; 0 disables the login limiter.
	LoginAttempts int
	// RequestsPerMinute per IP across the API; 0 disables it.
	RequestsPerMinute int
	// AccessLog receives one line per request, usually applog.AccessWriter();
	// nil disables access logging.
	AccessLog io.Writer
}

// NewApp builds the Fiber application with middlewares and routes.
func NewApp(d *Deps, o AppOptions) *fiber.App {
	if o.BodyLimitMB <= 0 {
		o.BodyLimitMB = 600
	}
	app := fiber.New(fiber.Config{
		AppName:      "dreamhome",
		BodyLimit:    o.BodyLimitMB << 20,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if o.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: o.AccessLog,
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	origins := o.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))
	if o.RequestsPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        o.RequestsPerMinute,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/uploads/")
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return detail(c, fiber.StatusTooManyRequests, "Too many requests")
			},
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error { return message(c, "DreamHome API is running") })
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	if o.UploadDir != "" {
		app.Get("/uploads/*", ServeUploads(o.UploadDir))
	}

	api := app.Group("/api")
	requireToken := RequireToken(d.Auth)

	api.Post("/register", d.AuthHandler.Register)
	login := []fiber.Handler{d.AuthHandler.Login}
	if o.LoginAttempts > 0 {
		login = append([]fiber.Handler{limiter.New(limiter.Config{
			Max:        o.LoginAttempts,
			Expiration: 10 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP() + "|login"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return detail(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
			},
		})}, login...)
	}
	api.Post("/login", login...)

	api.Get("/user", requireToken, d.UserHandler.Profile)
	api.Put("/user/update", requireToken, d.UserHandler.Update)
	api.Put("/user/change-password", requireToken, d.UserHandler.ChangePassword)

	api.Get("/properties", d.PropertyHandler.List)
	api.Post("/properties", requireToken, d.PropertyHandler.Create)
	api.Get("/properties/filtered", d.SearchHandler.Filtered)
	api.Get("/properties/offices", d.PropertyHandler.Offices())
	api.Get("/properties/land", d.PropertyHandler.Land())
	api.Get("/user/properties", requireToken, d.PropertyHandler.Mine)
	api.Get("/user/properties/:id/inquiries", requireToken, d.ContactHandler.Inbox)

	api.Post("/contact-owner", d.ContactHandler.ContactOwner)

	app.Use(func(c *fiber.Ctx) error {
		return detail(c, fiber.StatusNotFound, "Not Found")
	})
	return app
}
