package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
)

// ListSponsorQuery: filter GET /api/sponsors/all
type ListSponsorQuery struct {
	CategoryID *int
	TypeID     *int
	ScopeID    *int
	Status     string
	Q          string
}

func optInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, helper.ErrValidation(key + " tidak valid")
	}
	return &n, nil
}

func ParseListSponsorQuery(c *fiber.Ctx) (ListSponsorQuery, error) {
	var q ListSponsorQuery
	var err error
	if q.CategoryID, err = optInt(c, "category_id"); err != nil {
		return q, err
	}
	if q.TypeID, err = optInt(c, "type_id"); err != nil {
		return q, err
	}
	if q.ScopeID, err = optInt(c, "scope_id"); err != nil {
		return q, err
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("status"))) {
	case "":
	case "open":
		q.Status = userModel.SponsorStatusOpen
	case "closed":
		q.Status = userModel.SponsorStatusClosed
	default:
		return q, helper.ErrValidation("status harus Open atau Closed")
	}
	q.Q = strings.TrimSpace(c.Query("q"))
	return q, nil
}

type MasterRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SponsorItem: satu baris direktori sponsor
type SponsorItem struct {
	UserID            uuid.UUID  `json:"user_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	CompanyName       string     `json:"company_name"`
	CompanyAddress    *string    `json:"company_address,omitempty"`
	Industry          *string    `json:"industry,omitempty"`
	Website           *string    `json:"website,omitempty"`
	SocialMedia       *string    `json:"social_media,omitempty"`
	Category          *MasterRef `json:"category,omitempty"`
	Type              *MasterRef `json:"type,omitempty"`
	Scope             *MasterRef `json:"scope,omitempty"`
	BudgetMin         *int64     `json:"budget_min,omitempty"`
	BudgetMax         *int64     `json:"budget_max,omitempty"`
	Status            string     `json:"status"`
}

// SponsorRow: hasil join users + sponsor_profiles
type SponsorRow struct {
	userModel.SponsorProfileModel
	UserName              string  `gorm:"column:user_name"`
	UserEmail             string  `gorm:"column:user_email"`
	UserPhone             string  `gorm:"column:user_phone"`
	UserProfilePictureURL *string `gorm:"column:user_profile_picture_url"`
}

func ToSponsorItem(r SponsorRow, nameOf func(table string, id *int) string, tables [3]string) SponsorItem {
	ref := func(table string, id *int) *MasterRef {
		if id == nil {
			return nil
		}
		return &MasterRef{ID: *id, Name: nameOf(table, id)}
	}
	return SponsorItem{
		UserID:            r.SponsorProfileUserID,
		Name:              r.UserName,
		Email:             r.UserEmail,
		Phone:             r.UserPhone,
		ProfilePictureURL: r.UserProfilePictureURL,
		CompanyName:       r.SponsorProfileCompanyName,
		CompanyAddress:    r.SponsorProfileCompanyAddress,
		Industry:          r.SponsorProfileIndustry,
		Website:           r.SponsorProfileWebsite,
		SocialMedia:       r.SponsorProfileSocialMedia,
		Category:          ref(tables[0], r.SponsorProfileCategoryID),
		Type:              ref(tables[1], r.SponsorProfileTypeID),
		Scope:             ref(tables[2], r.SponsorProfileScopeID),
		BudgetMin:         r.SponsorProfileBudgetMin,
		BudgetMax:         r.SponsorProfileBudgetMax,
		Status:            r.SponsorProfileStatus,
	}
}
