package auth

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	helper "sponsorku_backend/internals/helpers"
)

func roleApp(h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		if r := c.Get("X-Role"); r != "" {
			c.Locals(helper.LocUserRole, r)
		}
		return c.Next()
	}, h, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func getWithRole(t *testing.T, app *fiber.App, role string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/x", nil)
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == fiber.StatusOK {
		return resp.StatusCode, ""
	}
	var body helper.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, body.Message
}

func TestOnlyRoles(t *testing.T) {
	tests := []struct {
		name    string
		message string
		role    string
		status  int
		wantMsg string
	}{
		{"allowed", "Hanya EO", "EO", 200, ""},
		{"forbidden custom message", "Hanya EO", "SPONSOR", 403, "Hanya EO"},
		{"forbidden default message", "", "SPONSOR", 403, defaultForbiddenMessage},
		{"missing role", "Hanya EO", "", 401, "Unauthorized: missing role information"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := roleApp(OnlyRoles(tt.message, "EO"))
			status, msg := getWithRole(t, app, tt.role)
			if status != tt.status || msg != tt.wantMsg {
				t.Fatalf("got %d %q, want %d %q", status, msg, tt.status, tt.wantMsg)
			}
		})
	}
}

// satu handler dipakai banyak request paralel (jalankan dengan -race)
func TestOnlyRolesSharedHandlerConcurrent(t *testing.T) {
	app := roleApp(OnlyRoles("", "EO"))

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := "SPONSOR"
			if i%2 == 0 {
				role = "EO"
			}
			req := httptest.NewRequest("GET", "/x", nil)
			req.Header.Set("X-Role", role)
			resp, err := app.Test(req)
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()
			want := fiber.StatusForbidden
			if role == "EO" {
				want = fiber.StatusOK
			}
			if resp.StatusCode != want {
				errs <- role + ": unexpected status"
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}

	// pesan default tetap sama setelah dipakai berkali-kali
	if _, msg := getWithRole(t, app, "SPONSOR"); msg != defaultForbiddenMessage {
		t.Fatalf("message = %q", msg)
	}
}

func TestRoleMiddlewareCopiesRoles(t *testing.T) {
	roles := []string{"EO"}
	app := roleApp(RoleMiddlewareWithCustomError(roles, ""))
	roles[0] = "SPONSOR"

	if status, _ := getWithRole(t, app, "EO"); status != fiber.StatusOK {
		t.Fatalf("roles mutated after construction leaked into handler, status %d", status)
	}
}
