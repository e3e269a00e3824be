package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/http/handlers"
)

func TestErrorHandlerHidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "sql: database is locked at /var/db")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errSecret
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	for _, path := range []string{"/boom", "/plain"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]any
		decodeInto(t, resp, &body)
		if resp.StatusCode != http.StatusInternalServerError || body["detail"] != "Internal server error" {
			t.Fatalf("%s: %d %v", path, resp.StatusCode, body)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	decodeInto(t, resp, &body)
	if resp.StatusCode != http.StatusTeapot || body["detail"] != "short and stout" {
		t.Fatalf("client error: %d %v", resp.StatusCode, body)
	}
}

type secretErr struct{}

func (secretErr) Error() string { return "dial tcp 10.0.0.5:27017: connection refused" }

var errSecret error = secretErr{}

func TestUnknownRouteIsJSON404(t *testing.T) {
	env := newTestEnv(t, handlers.AppOptions{})
	resp, body := env.do(t, "GET", "/api/nope", nil, "")
	if resp.StatusCode != http.StatusNotFound || body["detail"] != "Not Found" {
		t.Fatalf("got %d %v", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, handlers.AppOptions{})
	resp, body := env.do(t, "GET", "/", nil, "")
	if resp.StatusCode != http.StatusOK || body["message"] != "DreamHome API is running" {
		t.Fatalf("root: %d %v", resp.StatusCode, body)
	}
	resp, body = env.do(t, "GET", "/healthz", nil, "")
	if resp.StatusCode != http.StatusOK || body["ok"] != true {
		t.Fatalf("healthz: %d %v", resp.StatusCode, body)
	}
}
