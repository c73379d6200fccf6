package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	"sponsorku_backend/internals/features/users/sponsors/dto"
	helper "sponsorku_backend/internals/helpers"
)

type SponsorController struct {
	DB      *gorm.DB
	Catalog *catalog.Registry
}

func NewSponsorController(db *gorm.DB, reg *catalog.Registry) *SponsorController {
	return &SponsorController{DB: db, Catalog: reg}
}

var sponsorMasterTables = [3]string{
	catalogModel.TableSponsorCategories,
	catalogModel.TableSponsorTypes,
	catalogModel.TableSponsorScopes,
}

// ApplySponsorFilters: where-clause direktori sponsor (user aktif saja)
func ApplySponsorFilters(tx *gorm.DB, q dto.ListSponsorQuery) *gorm.DB {
	tx = tx.Where("users.is_active = ?", true)
	if q.CategoryID != nil {
		tx = tx.Where("sp.sponsor_profile_category_id = ?", *q.CategoryID)
	}
	if q.TypeID != nil {
		tx = tx.Where("sp.sponsor_profile_type_id = ?", *q.TypeID)
	}
	if q.ScopeID != nil {
		tx = tx.Where("sp.sponsor_profile_scope_id = ?", *q.ScopeID)
	}
	if q.Status != "" {
		tx = tx.Where("sp.sponsor_profile_status = ?", q.Status)
	}
	if q.Q != "" {
		like := "%" + q.Q + "%"
		tx = tx.Where("(sp.sponsor_profile_company_name ILIKE ? OR sp.sponsor_profile_industry ILIKE ? OR users.name ILIKE ?)", like, like, like)
	}
	return tx
}

// GET /api/sponsors/all (EO only)
func (sc *SponsorController) List(c *fiber.Ctx) error {
	q, err := dto.ParseListSponsorQuery(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	snap := sc.Catalog.Snapshot()
	if err := snap.CheckRefs(
		catalog.Ref{Table: sponsorMasterTables[0], Field: "category_id", ID: q.CategoryID},
		catalog.Ref{Table: sponsorMasterTables[1], Field: "type_id", ID: q.TypeID},
		catalog.Ref{Table: sponsorMasterTables[2], Field: "scope_id", ID: q.ScopeID},
	); err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	base := func() *gorm.DB {
		return ApplySponsorFilters(
			sc.DB.WithContext(c.UserContext()).
				Table("sponsor_profiles AS sp").
				Joins("JOIN users ON users.id = sp.sponsor_profile_user_id"),
			q,
		)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return helper.JsonFromError(c, helper.ErrInternal("Gagal menghitung sponsor", err))
	}

	var rows []dto.SponsorRow
	if err := base().
		Select(`sp.*, users.name AS user_name, users.email AS user_email,
			users.phone AS user_phone, users.profile_picture_url AS user_profile_picture_url`).
		Order("sp.sponsor_profile_company_name ASC").
		Offset(p.Offset()).Limit(p.Limit()).
		Scan(&rows).Error; err != nil {
		return helper.JsonFromError(c, helper.ErrInternal("Gagal mengambil sponsor", err))
	}

	items := make([]dto.SponsorItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ToSponsorItem(r, snap.Name, sponsorMasterTables))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Daftar sponsor", items, &pg)
}
