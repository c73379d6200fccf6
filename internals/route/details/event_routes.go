package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoute "sponsorku_backend/internals/features/events/events/route"
	proposalRoute "sponsorku_backend/internals/features/events/proposals/route"
	submissionRoute "sponsorku_backend/internals/features/events/submissions/route"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/helpers/notify"
	"sponsorku_backend/internals/helpers/storage"
)

// 🔐 event, proposal, pengajuan ke sponsor
func EventRoutes(protected fiber.Router, db *gorm.DB, blob storage.BlobService, pub notify.Publisher, reg *catalog.Registry) {
	proposalRoute.ProposalRoutes(protected, db, eventRoute.NewEventService(db, blob, reg), blob)
	submissionRoute.SubmissionRoutes(protected, db, pub, reg)
	eventRoute.EventRoutes(protected, db, blob, reg)
}
