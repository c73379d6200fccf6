package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/configs"
	helper "sponsorku_backend/internals/helpers"
)

// AdminKeyMiddleware: endpoint operator, cocokkan header X-Admin-Key dengan ADMIN_API_KEY.
// ADMIN_API_KEY kosong → endpoint selalu ditolak.
func AdminKeyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		want := strings.TrimSpace(configs.AdminAPIKey)
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if want == "" || got == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Admin key wajib")
		}
		if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			return helper.JsonError(c, fiber.StatusForbidden, "Admin key tidak valid")
		}
		return c.Next()
	}
}
