package route

import (
	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/masters/catalog/controller"
	"sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/middlewares"
)

// Public: master dropdown
func CatalogPublicRoutes(r fiber.Router, reg *service.Registry) {
	ctl := controller.NewCatalogController(reg)

	g := r.Group("/masters")
	g.Get("/events", ctl.EventMasters)
	g.Get("/sponsors", ctl.SponsorMasters)
}

// Operator: reload snapshot (X-Admin-Key)
func CatalogAdminRoutes(r fiber.Router, reg *service.Registry) {
	ctl := controller.NewCatalogController(reg)

	admin := r.Group("/admin/masters", middlewares.AdminKeyMiddleware())
	admin.Post("/refresh", ctl.Refresh)
}
