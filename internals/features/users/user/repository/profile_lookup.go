package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "sponsorku_backend/internals/features/users/user/model"
)

/*
Lookup profile id dari user id.
Semua FK kepemilikan (event_eo_id, proposal_sponsor_sponsor_id, payment_eo_id)
menyimpan profile id, bukan user id. Return gorm.ErrRecordNotFound kalau tidak ada.
*/

func EOProfileIDByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (uuid.UUID, error) {
	var p userModel.EOProfileModel
	err := db.WithContext(ctx).
		Select("eo_profile_id").
		Where("eo_profile_user_id = ?", userID).
		Take(&p).Error
	return p.EOProfileID, err
}

func SponsorProfileIDByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (uuid.UUID, error) {
	var p userModel.SponsorProfileModel
	err := db.WithContext(ctx).
		Select("sponsor_profile_id").
		Where("sponsor_profile_user_id = ?", userID).
		Take(&p).Error
	return p.SponsorProfileID, err
}
