package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users di database.
// Role tidak berubah setelah dibuat (EO / SPONSOR).
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role              string    `gorm:"type:varchar(20);not null" json:"role"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone             string    `gorm:"size:50;not null" json:"phone"`
	Password          string    `gorm:"not null" json:"-"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url" json:"profile_picture_url,omitempty"`
	GoogleID          *string   `gorm:"size:255;uniqueIndex" json:"google_id,omitempty"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}
