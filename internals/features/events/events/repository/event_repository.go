package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sponsorku_backend/internals/features/events/events/dto"
	"sponsorku_backend/internals/features/events/events/model"
	"sponsorku_backend/internals/features/events/events/service"
	proposalModel "sponsorku_backend/internals/features/events/proposals/model"
	submissionModel "sponsorku_backend/internals/features/events/submissions/model"
	paymentModel "sponsorku_backend/internals/features/finance/payments/model"
	userRepo "sponsorku_backend/internals/features/users/user/repository"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

func (r *EventRepository) EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := userRepo.EOProfileIDByUser(ctx, r.DB, userID)
	return id, notFound(err)
}

func (r *EventRepository) CreateEvent(ctx context.Context, e *model.EventModel) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) FindEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := r.DB.WithContext(ctx).Where("event_id = ?", id).Take(&ev).Error; err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (r *EventRepository) ListEventsByEO(ctx context.Context, eoID uuid.UUID, q dto.ListEventQuery, offset, limit int) ([]model.EventModel, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.EventModel{}).Where("event_eo_id = ?", eoID)
	if q.Q != "" {
		tx = tx.Where("event_name ILIKE ?", "%"+q.Q+"%")
	}
	if q.Upcoming {
		tx = tx.Where("event_start_time > ?", q.Now)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.EventModel
	if err := tx.Order("event_start_time ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// EventPatchColumns: kolom yang boleh ditulis PATCH. event_is_fasttrack hanya
// diubah callback payment, eo_id & created_at tidak pernah berubah.
var EventPatchColumns = []string{
	"event_name",
	"event_location",
	"event_target",
	"event_requirements",
	"event_description",
	"event_start_time",
	"event_end_time",
	"event_category_id",
	"event_sponsor_type_id",
	"event_size_id",
	"event_mode_id",
	"event_updated_at",
}

func (r *EventRepository) UpdateEvent(ctx context.Context, e *model.EventModel) error {
	return r.DB.WithContext(ctx).Model(e).Select(EventPatchColumns).Updates(e).Error
}

func (r *EventRepository) DeleteEventCascade(ctx context.Context, id uuid.UUID) ([]string, error) {
	var files []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// kunci event supaya tidak balapan dengan callback payment
		var ev model.EventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", id).Take(&ev).Error; err != nil {
			return notFound(err)
		}

		var proposals []proposalModel.ProposalModel
		if err := tx.Where("proposal_event_id = ?", id).Find(&proposals).Error; err != nil {
			return err
		}
		for _, p := range proposals {
			if p.ProposalPDFURL != nil {
				files = append(files, *p.ProposalPDFURL)
			}
		}

		if err := tx.Where("proposal_sponsor_event_id = ?", id).
			Delete(&submissionModel.ProposalSponsorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_event_id = ?", id).
			Delete(&proposalModel.ProposalModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&paymentModel.PaymentModel{}).
			Where("payment_event_id = ?", id).
			Update("payment_event_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ?", id).Delete(&model.EventModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
