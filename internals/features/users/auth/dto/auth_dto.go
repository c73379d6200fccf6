package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sponsorku_backend/internals/constants"
	authHelper "sponsorku_backend/internals/features/users/auth/helper"
	userDTO "sponsorku_backend/internals/features/users/user/dto"
	helper "sponsorku_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Role             string `json:"role" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Password         string `json:"password" validate:"required,min=6"`
	ConfirmPassword  string `json:"confirm_password" validate:"required"`
	OrganizationName string `json:"organization_name"`
	CompanyName      string `json:"company_name"`
}

// Normalize: trim, email lowercase, role uppercase ("Eo" → "EO")
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	r.Phone = strings.TrimSpace(r.Phone)
	r.OrganizationName = strings.TrimSpace(r.OrganizationName)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
}

func (r *RegisterRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	if !constants.IsValidRole(r.Role) {
		return helper.ErrValidation("Role harus EO atau SPONSOR")
	}
	if r.Password != r.ConfirmPassword {
		return helper.ErrValidation("Password do not match")
	}
	if !authHelper.IsValidPhone(r.Phone) {
		return helper.ErrValidation("Invalid phone number")
	}
	return nil
}

// ProfileName: nama organisasi/perusahaan default ke nama user
func (r *RegisterRequest) ProfileName() string {
	switch r.Role {
	case constants.RoleEO:
		if r.OrganizationName != "" {
			return r.OrganizationName
		}
	case constants.RoleSponsor:
		if r.CompanyName != "" {
			return r.CompanyName
		}
	}
	return r.Name
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
	Role    string `json:"role"`
}

func (r *GoogleLoginRequest) Normalize() {
	r.IDToken = strings.TrimSpace(r.IDToken)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AuthResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      userDTO.UserResponse `json:"user"`
}
