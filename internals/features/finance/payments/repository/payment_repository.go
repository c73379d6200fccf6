package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sponsorku_backend/internals/constants"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	"sponsorku_backend/internals/features/finance/payments/model"
	"sponsorku_backend/internals/features/finance/payments/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
	userRepo "sponsorku_backend/internals/features/users/user/repository"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

func (r *PaymentRepository) EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := userRepo.EOProfileIDByUser(ctx, r.DB, userID)
	return id, notFound(err)
}

func (r *PaymentRepository) FindUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := r.DB.WithContext(ctx).Where("id = ?", userID).Take(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *PaymentRepository) FindEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := r.DB.WithContext(ctx).Where("event_id = ?", id).Take(&ev).Error; err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *model.PaymentModel) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) SaveSnap(ctx context.Context, id uuid.UUID, token, redirectURL string) error {
	return r.DB.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("payment_id = ?", id).
		Updates(map[string]any{
			"payment_snap_token":   token,
			"payment_redirect_url": redirectURL,
		}).Error
}

func (r *PaymentRepository) FindPayment(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := r.DB.WithContext(ctx).Where("payment_id = ?", id).Take(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListPaymentsByEO(ctx context.Context, eoID uuid.UUID) ([]model.PaymentModel, error) {
	var out []model.PaymentModel
	err := r.DB.WithContext(ctx).
		Where("payment_eo_id = ?", eoID).
		Order("payment_created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) UpdateByOrderID(ctx context.Context, orderID string, fn func(p *model.PaymentModel)) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_order_id = ?", orderID).
			Take(&p).Error; err != nil {
			return notFound(err)
		}

		fn(&p)
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		// ✅ PAID → event jadi fast track (event bisa sudah dihapus)
		if p.IsPaid() && p.PaymentEventID != nil {
			return tx.Model(&eventModel.EventModel{}).
				Where("event_id = ?", *p.PaymentEventID).
				Update("event_is_fasttrack", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) LogGatewayEvent(ctx context.Context, ev *model.PaymentGatewayEventModel) error {
	return r.DB.WithContext(ctx).Create(ev).Error
}

func (r *PaymentRepository) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("payment_status = ? AND payment_created_at < ?", constants.PaymentPending, before).
		Updates(map[string]any{
			"payment_status":     constants.PaymentFailed,
			"payment_updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
