// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sponsorku_backend/internals/constants"
	authModel "sponsorku_backend/internals/features/users/auth/model"
	"sponsorku_backend/internals/features/users/auth/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
)

type AuthRepository struct {
	DB *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

/* ====================== USER ====================== */

func (r *AuthRepository) FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.DB.WithContext(ctx).Where("google_id = ?", googleID).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *AuthRepository) CreateUserWithProfile(ctx context.Context, u *userModel.UserModel, profileName string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		switch u.Role {
		case constants.RoleEO:
			return tx.Create(&userModel.EOProfileModel{
				EOProfileUserID:           u.ID,
				EOProfileOrganizationName: profileName,
			}).Error
		case constants.RoleSponsor:
			return tx.Create(&userModel.SponsorProfileModel{
				SponsorProfileUserID:      u.ID,
				SponsorProfileCompanyName: profileName,
				SponsorProfileStatus:      userModel.SponsorStatusOpen,
			}).Error
		}
		return nil
	})
}

func (r *AuthRepository) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	return r.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("id = ? AND google_id IS NULL", userID).
		Update("google_id", googleID).Error
}

func (r *AuthRepository) FindProfiles(ctx context.Context, userID uuid.UUID) (*userModel.EOProfileModel, *userModel.SponsorProfileModel, error) {
	var eo userModel.EOProfileModel
	err := r.DB.WithContext(ctx).Where("eo_profile_user_id = ?", userID).Take(&eo).Error
	switch {
	case err == nil:
		return &eo, nil, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	var sp userModel.SponsorProfileModel
	err = r.DB.WithContext(ctx).Where("sponsor_profile_user_id = ?", userID).Take(&sp).Error
	switch {
	case err == nil:
		return nil, &sp, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, nil
	default:
		return nil, nil, err
	}
}

/* ====================== BLACKLIST TOKEN ====================== */

func (r *AuthRepository) BlacklistToken(ctx context.Context, token string, expiredAt time.Time) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&authModel.TokenBlacklist{Token: token, ExpiredAt: expiredAt}).Error
}

func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expired_at <= ?", now).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
