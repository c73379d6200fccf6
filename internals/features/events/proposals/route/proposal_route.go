package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/events/proposals/controller"
	"sponsorku_backend/internals/features/events/proposals/repository"
	"sponsorku_backend/internals/features/events/proposals/service"
	"sponsorku_backend/internals/helpers/storage"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
)

// ProposalRoutes: /api/events/:id/proposal (EO pemilik event)
func ProposalRoutes(protected fiber.Router, db *gorm.DB, events service.EventAccess, blob storage.BlobService) {
	ctrl := controller.NewProposalController(
		service.NewService(repository.NewProposalRepository(db), events, blob),
	)

	eoOnly := authMiddleware.OnlyRoles(constants.RoleErrorEO("proposal"), constants.EOOnly...)

	protected.Post("/events/:id/proposal", eoOnly, ctrl.Create)
	protected.Get("/events/:id/proposal", eoOnly, ctrl.Get)
	protected.Put("/events/:id/proposal", eoOnly, ctrl.Update)
}
