package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/events/events/controller"
	"sponsorku_backend/internals/features/events/events/repository"
	"sponsorku_backend/internals/features/events/events/service"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/helpers/storage"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
)

func NewEventService(db *gorm.DB, blob storage.BlobService, reg *catalog.Registry) *service.Service {
	return service.NewService(repository.NewEventRepository(db), blob, reg)
}

// EventRoutes: /api/events (protected)
func EventRoutes(protected fiber.Router, db *gorm.DB, blob storage.BlobService, reg *catalog.Registry) {
	ctrl := controller.NewEventController(NewEventService(db, blob, reg))
	eoOnly := authMiddleware.OnlyRoles(constants.RoleErrorEO("event"), constants.EOOnly...)

	events := protected.Group("/events")
	events.Post("/", eoOnly, ctrl.Create)
	events.Get("/me", eoOnly, ctrl.ListMine)
	events.Get("/:id", ctrl.Detail)
	events.Patch("/:id", eoOnly, ctrl.Patch)
	events.Delete("/:id", eoOnly, ctrl.Delete)
}
