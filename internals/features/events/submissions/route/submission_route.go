package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/events/submissions/controller"
	"sponsorku_backend/internals/features/events/submissions/repository"
	"sponsorku_backend/internals/features/events/submissions/service"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/helpers/notify"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
)

// SubmissionRoutes: kirim/review proposal (protected).
// Role dicek per-route supaya prefix bersama (/events, /sponsors) tidak saling blok.
func SubmissionRoutes(protected fiber.Router, db *gorm.DB, pub notify.Publisher, reg *catalog.Registry) {
	ctrl := controller.NewSubmissionController(
		service.NewService(repository.NewSubmissionRepository(db), pub, reg),
	)

	eoOnly := authMiddleware.OnlyRoles(constants.RoleErrorEO("pengajuan sponsor"), constants.EOOnly...)
	sponsorOnly := authMiddleware.OnlyRoles(constants.RoleErrorSponsor("proposal masuk"), constants.SponsorOnly...)
	anyRole := authMiddleware.OnlyRoles("Role tidak dikenal", constants.AllRoles...)

	// 🔹 EO
	protected.Post("/events/:id/submissions", eoOnly, ctrl.SendEvent)
	protected.Get("/events/:id/submissions", eoOnly, ctrl.ListForEvent)
	protected.Post("/proposals/:proposalId/send/:sponsorId", eoOnly, ctrl.SendProposal)
	protected.Get("/submissions/eo", eoOnly, ctrl.ListForEO)
	protected.Get("/submissions/:id", anyRole, ctrl.Detail)

	// 🔹 SPONSOR
	protected.Get("/sponsors/incoming", sponsorOnly, ctrl.ListIncoming)
	protected.Get("/sponsors/incoming/:id", sponsorOnly, ctrl.Detail)
	protected.Patch("/sponsors/incoming/:id/review", sponsorOnly, ctrl.Review)
	protected.Get("/sponsors/recommended-events", sponsorOnly, ctrl.Recommended)
}
