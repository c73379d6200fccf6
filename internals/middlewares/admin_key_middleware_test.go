package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/configs"
)

func TestAdminKeyMiddleware(t *testing.T) {
	app := fiber.New()
	app.Post("/admin", AdminKeyMiddleware(), func(c *fiber.Ctx) error { return c.SendStatus(204) })

	tests := []struct {
		name       string
		configured string
		header     string
		status     int
	}{
		{"not configured", "", "abc", 401},
		{"missing header", "s3cret", "", 401},
		{"wrong key", "s3cret", "nope", 403},
		{"ok", "s3cret", "s3cret", 204},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs.AdminAPIKey = tt.configured
			req := httptest.NewRequest("POST", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("X-Admin-Key", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestRequestIDMiddlewareEchoesHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return c.SendStatus(500)
		}
		return c.SendString(c.Locals(LocRequestID).(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 || resp.Header.Get("X-Request-ID") != "req-123" {
		t.Fatalf("status=%d id=%q", resp.StatusCode, resp.Header.Get("X-Request-ID"))
	}
}
