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
	proposalModel "sponsorku_backend/internals/features/events/proposals/model"
	"sponsorku_backend/internals/features/events/submissions/dto"
	"sponsorku_backend/internals/features/events/submissions/model"
	"sponsorku_backend/internals/features/events/submissions/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
	userRepo "sponsorku_backend/internals/features/users/user/repository"
	helper "sponsorku_backend/internals/helpers"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

/* ====================== profiles ====================== */

func (r *SubmissionRepository) EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := userRepo.EOProfileIDByUser(ctx, r.DB, userID)
	return id, notFound(err)
}

func (r *SubmissionRepository) SponsorProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := userRepo.SponsorProfileIDByUser(ctx, r.DB, userID)
	return id, notFound(err)
}

func (r *SubmissionRepository) FindSponsorProfile(ctx context.Context, sponsorID uuid.UUID) (*userModel.SponsorProfileModel, error) {
	var sp userModel.SponsorProfileModel
	if err := r.DB.WithContext(ctx).Where("sponsor_profile_id = ?", sponsorID).Take(&sp).Error; err != nil {
		return nil, notFound(err)
	}
	return &sp, nil
}

/* ====================== event / proposal ====================== */

func (r *SubmissionRepository) FindEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := r.DB.WithContext(ctx).Where("event_id = ?", id).Take(&ev).Error; err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (r *SubmissionRepository) FindProposal(ctx context.Context, id uuid.UUID) (*proposalModel.ProposalModel, error) {
	var p proposalModel.ProposalModel
	if err := r.DB.WithContext(ctx).Where("proposal_id = ?", id).Take(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetOrCreateProposal: INSERT ... ON CONFLICT (proposal_event_id) DO NOTHING lalu baca ulang.
// Dua request paralel untuk event yang sama selalu dapat proposal yang sama.
func (r *SubmissionRepository) GetOrCreateProposal(ctx context.Context, ev *eventModel.EventModel, submissionType string) (*proposalModel.ProposalModel, error) {
	db := r.DB.WithContext(ctx)
	p := proposalModel.ProposalModel{
		ProposalEventID:        ev.EventID,
		ProposalSubmissionType: submissionType,
		ProposalPDFURL:         ev.EventProposalURL,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposal_event_id"}},
		DoNothing: true,
	}).Create(&p).Error; err != nil {
		return nil, err
	}

	var out proposalModel.ProposalModel
	if err := db.Where("proposal_event_id = ?", ev.EventID).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

/* ====================== submissions ====================== */

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, s *model.ProposalSponsorModel) error {
	if err := r.DB.WithContext(ctx).Create(s).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return service.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *SubmissionRepository) FindSubmission(ctx context.Context, id uuid.UUID) (*model.ProposalSponsorModel, error) {
	var s model.ProposalSponsorModel
	if err := r.DB.WithContext(ctx).Where("proposal_sponsor_id = ?", id).Take(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// ReviewSubmission: conditional update, 0 row = sudah direview request lain
func (r *SubmissionRepository) ReviewSubmission(ctx context.Context, id uuid.UUID, status string, feedback *string, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.ProposalSponsorModel{}).
		Where("proposal_sponsor_id = ? AND proposal_sponsor_status = ?", id, constants.SubmissionPending).
		Updates(map[string]any{
			"proposal_sponsor_status":      status,
			"proposal_sponsor_feedback":    feedback,
			"proposal_sponsor_reviewed_at": at,
			"proposal_sponsor_updated_at":  at,
		})
	return res.RowsAffected, res.Error
}

const rowSelect = `ps.*,
	e.event_name, e.event_location, e.event_image_url, e.event_start_time, e.event_end_time,
	e.event_is_fasttrack, e.event_eo_id,
	p.proposal_pdf_url,
	eo.eo_profile_organization_name AS eo_organization_name,
	sp.sponsor_profile_company_name AS sponsor_company_name`

func (r *SubmissionRepository) joined(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("proposal_sponsors AS ps").
		Select(rowSelect).
		Joins("JOIN events e ON e.event_id = ps.proposal_sponsor_event_id").
		Joins("JOIN proposals p ON p.proposal_id = ps.proposal_sponsor_proposal_id").
		Joins("JOIN eo_profiles eo ON eo.eo_profile_id = e.event_eo_id").
		Joins("JOIN sponsor_profiles sp ON sp.sponsor_profile_id = ps.proposal_sponsor_sponsor_id")
}

func (r *SubmissionRepository) FindSubmissionRow(ctx context.Context, id uuid.UUID) (*dto.SubmissionRow, error) {
	var rows []dto.SubmissionRow
	if err := r.joined(ctx).Where("ps.proposal_sponsor_id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, service.ErrNotFound
	}
	return &rows[0], nil
}

func (r *SubmissionRepository) ListSubmissions(ctx context.Context, f dto.Filter) ([]dto.SubmissionRow, error) {
	tx := r.joined(ctx)
	if f.SponsorID != nil {
		tx = tx.Where("ps.proposal_sponsor_sponsor_id = ?", *f.SponsorID)
	}
	if f.EventID != nil {
		tx = tx.Where("ps.proposal_sponsor_event_id = ?", *f.EventID)
	}
	if f.EOID != nil {
		tx = tx.Where("e.event_eo_id = ?", *f.EOID)
	}
	if f.Status != "" {
		tx = tx.Where("ps.proposal_sponsor_status = ?", f.Status)
	}
	if f.SubmissionType != "" {
		tx = tx.Where("ps.proposal_sponsor_submission_type = ?", f.SubmissionType)
	}
	if f.From != nil {
		tx = tx.Where("ps.proposal_sponsor_created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("ps.proposal_sponsor_created_at <= ?", *f.To)
	}

	var rows []dto.SubmissionRow
	if err := tx.Order("ps.proposal_sponsor_created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

/* ====================== recommendations ====================== */

func (r *SubmissionRepository) ListUpcomingNotSent(ctx context.Context, sponsorID uuid.UUID, now time.Time) ([]eventModel.EventModel, error) {
	sent := r.DB.WithContext(ctx).
		Model(&model.ProposalSponsorModel{}).
		Select("proposal_sponsor_event_id").
		Where("proposal_sponsor_sponsor_id = ?", sponsorID)

	var rows []eventModel.EventModel
	err := r.DB.WithContext(ctx).
		Where("event_start_time > ?", now).
		Where("event_id NOT IN (?)", sent).
		Order("event_start_time ASC").
		Limit(200).
		Find(&rows).Error
	return rows, err
}
