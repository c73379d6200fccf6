package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/constants"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/features/users/sponsors/controller"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
)

// SponsorRoutes: direktori sponsor, hanya untuk EO.
// Middleware dipasang per-route karena prefix /sponsors juga dipakai route sponsor.
func SponsorRoutes(protected fiber.Router, db *gorm.DB, reg *catalog.Registry) {
	ctrl := controller.NewSponsorController(db, reg)

	protected.Get("/sponsors/all",
		authMiddleware.OnlyRoles(constants.RoleErrorEO("daftar sponsor"), constants.EOOnly...),
		ctrl.List,
	)
}
