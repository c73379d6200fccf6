package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	helper "sponsorku_backend/internals/helpers"
)

const defaultForbiddenMessage = "Forbidden: you are not authorized to access this resource"

// RoleMiddlewareWithCustomError validasi role + custom error message.
// Pesan ditentukan sekali saat handler dibuat, handler tidak menulis state bersama.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	forbidden := customForbiddenMessage
	if forbidden == "" {
		forbidden = defaultForbiddenMessage
	}
	allowed := append([]string(nil), allowedRoles...)

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helper.LocUserRole).(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}

		log.Debug().Str("role", role).Str("path", c.Path()).Msg("[ROLE] ditolak")
		return helper.JsonError(c, fiber.StatusForbidden, forbidden)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
