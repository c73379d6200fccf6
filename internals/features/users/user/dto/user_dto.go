package dto

import (
	"time"

	"github.com/google/uuid"

	uModel "sponsorku_backend/internals/features/users/user/model"
)

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// UserResponse: user tanpa password
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Phone             string    `json:"phone"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	HasGoogle         bool      `json:"has_google"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromUserModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		Phone:             u.Phone,
		ProfilePictureURL: u.ProfilePictureURL,
		HasGoogle:         u.GoogleID != nil && *u.GoogleID != "",
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// ProfileResponse: user + profil sesuai role (hanya satu yang terisi)
type ProfileResponse struct {
	User           UserResponse                `json:"user"`
	EOProfile      *uModel.EOProfileModel      `json:"eo_profile,omitempty"`
	SponsorProfile *uModel.SponsorProfileModel `json:"sponsor_profile,omitempty"`
}
