package controller

import (
	"github.com/gofiber/fiber/v2"

	"sponsorku_backend/internals/features/masters/catalog/model"
	"sponsorku_backend/internals/features/masters/catalog/service"
	helper "sponsorku_backend/internals/helpers"
)

type CatalogController struct {
	Registry *service.Registry
}

func NewCatalogController(reg *service.Registry) *CatalogController {
	return &CatalogController{Registry: reg}
}

// GET /api/masters/events
func (ctl *CatalogController) EventMasters(c *fiber.Ctx) error {
	s := ctl.Registry.Snapshot()
	c.Set("Cache-Control", "public, max-age=300")
	return helper.JsonOK(c, "Master event", fiber.Map{
		"categories":    s.List(model.TableEventCategories),
		"sponsor_types": s.List(model.TableEventSponsorTypes),
		"sizes":         s.List(model.TableEventSizes),
		"modes":         s.List(model.TableEventModes),
	})
}

// GET /api/masters/sponsors
func (ctl *CatalogController) SponsorMasters(c *fiber.Ctx) error {
	s := ctl.Registry.Snapshot()
	c.Set("Cache-Control", "public, max-age=300")
	return helper.JsonOK(c, "Master sponsor", fiber.Map{
		"categories": s.List(model.TableSponsorCategories),
		"types":      s.List(model.TableSponsorTypes),
		"scopes":     s.List(model.TableSponsorScopes),
	})
}

// POST /api/admin/masters/refresh
func (ctl *CatalogController) Refresh(c *fiber.Ctx) error {
	s, err := ctl.Registry.Refresh(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, helper.ErrInternal("Gagal memuat ulang master", err))
	}
	counts := fiber.Map{}
	for _, t := range model.AllTables {
		counts[t] = len(s.List(t))
	}
	return helper.JsonOK(c, "Master berhasil dimuat ulang", fiber.Map{
		"loaded_at": s.LoadedAt,
		"counts":    counts,
	})
}
