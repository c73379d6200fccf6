package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SponsorStatusOpen   = "Open"
	SponsorStatusClosed = "Closed"
)

// SponsorProfileModel: 1:1 dengan user ber-role SPONSOR
type SponsorProfileModel struct {
	SponsorProfileID             uuid.UUID `gorm:"column:sponsor_profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"sponsor_profile_id"`
	SponsorProfileUserID         uuid.UUID `gorm:"column:sponsor_profile_user_id;type:uuid;not null;uniqueIndex:uq_sponsor_profiles_user" json:"sponsor_profile_user_id"`
	SponsorProfileCompanyName    string    `gorm:"column:sponsor_profile_company_name;size:255;not null" json:"sponsor_profile_company_name"`
	SponsorProfileCompanyAddress *string   `gorm:"column:sponsor_profile_company_address" json:"sponsor_profile_company_address,omitempty"`
	SponsorProfileIndustry       *string   `gorm:"column:sponsor_profile_industry" json:"sponsor_profile_industry,omitempty"`
	SponsorProfileWebsite        *string   `gorm:"column:sponsor_profile_website" json:"sponsor_profile_website,omitempty"`
	SponsorProfileSocialMedia    *string   `gorm:"column:sponsor_profile_social_media" json:"sponsor_profile_social_media,omitempty"`

	// Master (catalog) refs
	SponsorProfileCategoryID *int `gorm:"column:sponsor_profile_category_id" json:"sponsor_profile_category_id,omitempty"`
	SponsorProfileTypeID     *int `gorm:"column:sponsor_profile_type_id" json:"sponsor_profile_type_id,omitempty"`
	SponsorProfileScopeID    *int `gorm:"column:sponsor_profile_scope_id" json:"sponsor_profile_scope_id,omitempty"`

	// Budget (IDR)
	SponsorProfileBudgetMin *int64 `gorm:"column:sponsor_profile_budget_min" json:"sponsor_profile_budget_min,omitempty"`
	SponsorProfileBudgetMax *int64 `gorm:"column:sponsor_profile_budget_max" json:"sponsor_profile_budget_max,omitempty"`

	SponsorProfileStatus    string    `gorm:"column:sponsor_profile_status;type:varchar(10);not null;default:'Open'" json:"sponsor_profile_status"`
	SponsorProfileCreatedAt time.Time `gorm:"column:sponsor_profile_created_at;autoCreateTime" json:"sponsor_profile_created_at"`
	SponsorProfileUpdatedAt time.Time `gorm:"column:sponsor_profile_updated_at;autoUpdateTime" json:"sponsor_profile_updated_at"`
}

func (SponsorProfileModel) TableName() string { return "sponsor_profiles" }
