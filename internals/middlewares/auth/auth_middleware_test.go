package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sponsorku_backend/internals/configs"
	helper "sponsorku_backend/internals/helpers"
)

type fakeGuard struct {
	blacklisted map[string]bool
	users       map[uuid.UUID]bool
}

func (f *fakeGuard) IsBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklisted[token], nil
}

func (f *fakeGuard) IsUserActive(_ context.Context, id uuid.UUID) (bool, error) {
	active, ok := f.users[id]
	if !ok {
		return false, ErrUserNotFound
	}
	return active, nil
}

func newTestApp(g TokenGuard) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Get("/any", AuthMiddleware(g), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helper.LocUserID).(string) + "|" + helper.GetUserRole(c))
	})
	app.Get("/eo", AuthMiddleware(g), OnlyRoles("Hanya EO", "EO"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func mustToken(t *testing.T, id uuid.UUID, role string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := helper.GenerateAccessToken(configs.JWTSecret, id, "x@mail.com", role, ttl, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	configs.JWTSecret = "test-secret"

	eo := uuid.New()
	sponsor := uuid.New()
	inactive := uuid.New()
	ghost := uuid.New()

	revoked := mustToken(t, eo, "EO", time.Hour)
	g := &fakeGuard{
		blacklisted: map[string]bool{revoked: true},
		users:       map[uuid.UUID]bool{eo: true, sponsor: true, inactive: false},
	}
	app := newTestApp(g)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"no header", "/any", "", 401, ""},
		{"bad scheme", "/any", "Basic abc", 401, ""},
		{"garbage token", "/any", "Bearer not.a.jwt", 401, ""},
		{"expired", "/any", "Bearer " + mustToken(t, eo, "EO", -time.Hour), 401, ""},
		{"blacklisted", "/any", "Bearer " + revoked, 401, ""},
		{"inactive user", "/any", "Bearer " + mustToken(t, inactive, "EO", time.Hour), 401, ""},
		{"unknown user", "/any", "Bearer " + mustToken(t, ghost, "EO", time.Hour), 401, ""},
		{"valid", "/any", "Bearer " + mustToken(t, sponsor, "SPONSOR", time.Hour), 200, sponsor.String() + "|SPONSOR"},
		{"role allowed", "/eo", "Bearer " + mustToken(t, eo, "EO", 2*time.Hour), 200, "ok"},
		{"role denied", "/eo", "Bearer " + mustToken(t, sponsor, "SPONSOR", time.Hour), 403, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.body != "" {
				b, _ := io.ReadAll(resp.Body)
				if string(b) != tt.body {
					t.Fatalf("body = %q, want %q", b, tt.body)
				}
			}
		})
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	configs.JWTSecret = "test-secret"
	id := uuid.New()
	tok, _, _ := helper.GenerateAccessToken("another-secret", id, "a@b.co", "EO", time.Hour, time.Now())

	app := newTestApp(&fakeGuard{users: map[uuid.UUID]bool{id: true}})
	req := httptest.NewRequest("GET", "/any", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ := app.Test(req)
	if resp.StatusCode != 401 {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
