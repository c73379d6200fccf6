package model

import (
	"time"

	"github.com/google/uuid"
)

// EOProfileModel: 1:1 dengan user ber-role EO
type EOProfileModel struct {
	EOProfileID                  uuid.UUID `gorm:"column:eo_profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"eo_profile_id"`
	EOProfileUserID              uuid.UUID `gorm:"column:eo_profile_user_id;type:uuid;not null;uniqueIndex:uq_eo_profiles_user" json:"eo_profile_user_id"`
	EOProfileOrganizationName    string    `gorm:"column:eo_profile_organization_name;size:255;not null" json:"eo_profile_organization_name"`
	EOProfileOrganizationAddress *string   `gorm:"column:eo_profile_organization_address" json:"eo_profile_organization_address,omitempty"`
	EOProfileWebsite             *string   `gorm:"column:eo_profile_website" json:"eo_profile_website,omitempty"`
	EOProfileCreatedAt           time.Time `gorm:"column:eo_profile_created_at;autoCreateTime" json:"eo_profile_created_at"`
	EOProfileUpdatedAt           time.Time `gorm:"column:eo_profile_updated_at;autoUpdateTime" json:"eo_profile_updated_at"`
}

func (EOProfileModel) TableName() string { return "eo_profiles" }
