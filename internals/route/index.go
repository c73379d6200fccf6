package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	paymentService "sponsorku_backend/internals/features/finance/payments/service"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/helpers/notify"
	"sponsorku_backend/internals/helpers/storage"
	authMiddleware "sponsorku_backend/internals/middlewares/auth"
	routeDetails "sponsorku_backend/internals/route/details"
)

var startTime time.Time

// Deps: dependency yang dibuat sekali di main
type Deps struct {
	DB        *gorm.DB
	Blob      storage.BlobService
	Publisher notify.Publisher
	Catalog   *catalog.Registry
	Payments  *paymentService.Service
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	BaseRoutes(app)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	// didaftarkan sebelum group protected supaya tidak kena AuthMiddleware
	log.Info().Msg("[ROUTES] Mounting public routes...")
	routeDetails.AuthPublicRoutes(api, d.DB)
	routeDetails.MasterRoutes(api, d.Catalog)
	routeDetails.FinancePublicRoutes(api, d.Payments)

	// ===================== PROTECTED (JWT + blacklist) =====================
	log.Info().Msg("[ROUTES] Mounting protected routes...")
	protected := api.Group("", authMiddleware.AuthMiddleware(authMiddleware.NewGormTokenGuard(d.DB)))

	routeDetails.UserRoutes(protected, d.DB, d.Blob, d.Catalog)
	routeDetails.EventRoutes(protected, d.DB, d.Blob, d.Publisher, d.Catalog)
	routeDetails.FinanceRoutes(protected, d.Payments)
}
