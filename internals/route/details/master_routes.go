package details

import (
	"github.com/gofiber/fiber/v2"

	catalogRoute "sponsorku_backend/internals/features/masters/catalog/route"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
)

// 🔓 dropdown master + reload snapshot (X-Admin-Key)
func MasterRoutes(api fiber.Router, reg *catalog.Registry) {
	catalogRoute.CatalogPublicRoutes(api, reg)
	catalogRoute.CatalogAdminRoutes(api, reg)
}
