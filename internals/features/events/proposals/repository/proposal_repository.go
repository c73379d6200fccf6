package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sponsorku_backend/internals/features/events/proposals/model"
	"sponsorku_backend/internals/features/events/proposals/service"
)

type ProposalRepository struct {
	DB *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

func (r *ProposalRepository) FindProposalByEvent(ctx context.Context, eventID uuid.UUID) (*model.ProposalModel, error) {
	var p model.ProposalModel
	if err := r.DB.WithContext(ctx).Where("proposal_event_id = ?", eventID).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepository) CreateProposal(ctx context.Context, p *model.ProposalModel) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProposalRepository) UpdateProposal(ctx context.Context, p *model.ProposalModel) error {
	return r.DB.WithContext(ctx).
		Model(&model.ProposalModel{}).
		Where("proposal_id = ?", p.ProposalID).
		Updates(map[string]any{
			"proposal_submission_type": p.ProposalSubmissionType,
			"proposal_pdf_url":         p.ProposalPDFURL,
		}).Error
}
