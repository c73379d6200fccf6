package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sponsorku_backend/internals/features/users/profiles/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *ProfileRepository) FindProfiles(ctx context.Context, userID uuid.UUID) (*userModel.EOProfileModel, *userModel.SponsorProfileModel, error) {
	var eos []userModel.EOProfileModel
	if err := r.DB.WithContext(ctx).Where("eo_profile_user_id = ?", userID).Limit(1).Find(&eos).Error; err != nil {
		return nil, nil, err
	}
	if len(eos) == 1 {
		return &eos[0], nil, nil
	}
	var sps []userModel.SponsorProfileModel
	if err := r.DB.WithContext(ctx).Where("sponsor_profile_user_id = ?", userID).Limit(1).Find(&sps).Error; err != nil {
		return nil, nil, err
	}
	if len(sps) == 1 {
		return nil, &sps[0], nil
	}
	return nil, nil, nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, u *userModel.UserModel, eo *userModel.EOProfileModel, sp *userModel.SponsorProfileModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Updates(map[string]any{
			"name":                u.Name,
			"phone":               u.Phone,
			"profile_picture_url": u.ProfilePictureURL,
		}).Error; err != nil {
			return err
		}
		if eo != nil {
			if err := tx.Save(eo).Error; err != nil {
				return err
			}
		}
		if sp != nil {
			if err := tx.Save(sp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
