package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/features/users/profiles/controller"
	"sponsorku_backend/internals/features/users/profiles/repository"
	"sponsorku_backend/internals/features/users/profiles/service"
	"sponsorku_backend/internals/helpers/storage"
)

// ProfileRoutes: /api/profile (protected)
func ProfileRoutes(protected fiber.Router, db *gorm.DB, blob storage.BlobService, reg *catalog.Registry) {
	ctrl := controller.NewProfileController(
		service.NewService(repository.NewProfileRepository(db), blob, reg),
	)

	protected.Get("/profile", ctrl.Get)
	protected.Put("/profile", ctrl.Update)
}
