package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/constants"
	eventDTO "sponsorku_backend/internals/features/events/events/dto"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	proposalModel "sponsorku_backend/internals/features/events/proposals/model"
	"sponsorku_backend/internals/features/events/submissions/dto"
	"sponsorku_backend/internals/features/events/submissions/model"
	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/notify"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate submission")
)

type Store interface {
	EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	SponsorProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	FindSponsorProfile(ctx context.Context, sponsorID uuid.UUID) (*userModel.SponsorProfileModel, error)

	FindEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error)
	FindProposal(ctx context.Context, id uuid.UUID) (*proposalModel.ProposalModel, error)
	// GetOrCreateProposal: dijaga unique index proposal_event_id
	GetOrCreateProposal(ctx context.Context, ev *eventModel.EventModel, submissionType string) (*proposalModel.ProposalModel, error)

	// CreateSubmission: ErrDuplicate kalau (proposal, sponsor) sudah ada
	CreateSubmission(ctx context.Context, s *model.ProposalSponsorModel) error
	FindSubmission(ctx context.Context, id uuid.UUID) (*model.ProposalSponsorModel, error)
	FindSubmissionRow(ctx context.Context, id uuid.UUID) (*dto.SubmissionRow, error)
	// ReviewSubmission: UPDATE ... WHERE status = 'PENDING', return rows affected
	ReviewSubmission(ctx context.Context, id uuid.UUID, status string, feedback *string, at time.Time) (int64, error)
	ListSubmissions(ctx context.Context, f dto.Filter) ([]dto.SubmissionRow, error)

	// ListUpcomingNotSent: event start > now yang belum dikirim ke sponsor ini
	ListUpcomingNotSent(ctx context.Context, sponsorID uuid.UUID, now time.Time) ([]eventModel.EventModel, error)
}

type Service struct {
	Store     Store
	Publisher notify.Publisher
	Catalog   *catalog.Registry
	Now       func() time.Time
}

func NewService(store Store, pub notify.Publisher, reg *catalog.Registry) *Service {
	if pub == nil {
		pub = notify.NopPublisher{}
	}
	return &Service{
		Store:     store,
		Publisher: pub,
		Catalog:   reg,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

/* =========================================================
   Ownership helpers
   ========================================================= */

func (s *Service) resolveEO(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := s.Store.EOProfileIDByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return uuid.Nil, helper.ErrForbidden("EO profile not found")
	}
	if err != nil {
		return uuid.Nil, helper.ErrInternal("Gagal mengambil profil EO", err)
	}
	return id, nil
}

func (s *Service) resolveSponsor(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := s.Store.SponsorProfileIDByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return uuid.Nil, helper.ErrForbidden("Sponsor profile not found")
	}
	if err != nil {
		return uuid.Nil, helper.ErrInternal("Gagal mengambil profil sponsor", err)
	}
	return id, nil
}

func (s *Service) findEvent(ctx context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	ev, err := s.Store.FindEvent(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Event not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil event", err)
	}
	return ev, nil
}

/* =========================================================
   SEND
   ========================================================= */

// SendEvent: kirim event ke sponsor. Proposal event dibuat kalau belum ada.
func (s *Service) SendEvent(ctx context.Context, userID, eventID uuid.UUID, req dto.SendEventRequest) (*dto.SendResult, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.SponsorID == uuid.Nil {
		return nil, helper.ErrValidation("sponsor_id wajib diisi")
	}
	subType, err := dto.ResolveSubmissionType(req.SubmissionType, constants.SubmissionRegular)
	if err != nil {
		return nil, err
	}
	ev, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.EventEOID != eoID {
		return nil, helper.ErrForbidden("Forbidden: not your event")
	}
	if err := s.ensureSponsor(ctx, req.SponsorID); err != nil {
		return nil, err
	}

	p, err := s.Store.GetOrCreateProposal(ctx, ev, subType)
	if err != nil {
		return nil, helper.ErrInternal("Gagal menyiapkan proposal", err)
	}
	return s.send(ctx, ev, p, req.SponsorID, subType)
}

// SendProposal: kirim proposal yang sudah ada. Tipe default = tipe proposal.
func (s *Service) SendProposal(ctx context.Context, userID, proposalID, sponsorID uuid.UUID, req dto.SendProposalRequest) (*dto.SendResult, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Store.FindProposal(ctx, proposalID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Proposal not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil proposal", err)
	}
	ev, err := s.findEvent(ctx, p.ProposalEventID)
	if err != nil {
		return nil, err
	}
	if ev.EventEOID != eoID {
		return nil, helper.ErrForbidden("Forbidden: not your proposal")
	}
	subType, err := dto.ResolveSubmissionType(req.SubmissionType, p.ProposalSubmissionType)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSponsor(ctx, sponsorID); err != nil {
		return nil, err
	}
	return s.send(ctx, ev, p, sponsorID, subType)
}

func (s *Service) ensureSponsor(ctx context.Context, sponsorID uuid.UUID) error {
	_, err := s.Store.FindSponsorProfile(ctx, sponsorID)
	if errors.Is(err, ErrNotFound) {
		return helper.ErrNotFound("Sponsor not found")
	}
	if err != nil {
		return helper.ErrInternal("Gagal mengambil sponsor", err)
	}
	return nil
}

func (s *Service) send(ctx context.Context, ev *eventModel.EventModel, p *proposalModel.ProposalModel, sponsorID uuid.UUID, subType string) (*dto.SendResult, error) {
	sub := &model.ProposalSponsorModel{
		ProposalSponsorProposalID:     p.ProposalID,
		ProposalSponsorEventID:        ev.EventID,
		ProposalSponsorSponsorID:      sponsorID,
		ProposalSponsorSubmissionType: subType,
		ProposalSponsorStatus:         constants.SubmissionPending,
	}
	if err := s.Store.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, helper.ErrConflict("Event already sent to this sponsor")
		}
		return nil, helper.ErrInternal("Gagal mengirim proposal", err)
	}

	log.Info().
		Str("submission_id", sub.ProposalSponsorID.String()).
		Str("event_id", ev.EventID.String()).
		Str("sponsor_id", sponsorID.String()).
		Str("type", subType).
		Msg("[SUBMISSION] sent")

	notify.SafePublish(ctx, s.Publisher, notify.KeySubmissionCreated, map[string]any{
		"submission_id":   sub.ProposalSponsorID,
		"event_id":        ev.EventID,
		"sponsor_id":      sponsorID,
		"submission_type": subType,
	})

	return &dto.SendResult{
		Submission:      *sub,
		RequiresPayment: subType == constants.SubmissionFastTrack && !ev.EventIsFasttrack,
	}, nil
}

/* =========================================================
   REVIEW
   ========================================================= */

// Review: PENDING → ACCEPTED | REJECTED oleh sponsor pemilik row, sekali saja.
func (s *Service) Review(ctx context.Context, userID, submissionID uuid.UUID, req dto.ReviewRequest) (*model.ProposalSponsorModel, error) {
	sponsorID, err := s.resolveSponsor(ctx, userID)
	if err != nil {
		return nil, err
	}
	status, err := req.ResolveStatus()
	if err != nil {
		return nil, err
	}

	sub, err := s.Store.FindSubmission(ctx, submissionID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Submission not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil submission", err)
	}
	if sub.ProposalSponsorSponsorID != sponsorID {
		return nil, helper.ErrForbidden("Forbidden: not your submission")
	}
	if sub.ProposalSponsorStatus != constants.SubmissionPending {
		return nil, helper.ErrConflict("Submission already reviewed")
	}
	feedback, err := req.ResolveFeedback(sub.ProposalSponsorSubmissionType)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	n, err := s.Store.ReviewSubmission(ctx, submissionID, status, feedback, now)
	if err != nil {
		return nil, helper.ErrInternal("Gagal menyimpan review", err)
	}
	if n == 0 {
		// kalah balapan dengan reviewer lain
		return nil, helper.ErrConflict("Submission already reviewed")
	}

	sub.ProposalSponsorStatus = status
	sub.ProposalSponsorFeedback = feedback
	sub.ProposalSponsorReviewedAt = &now
	sub.ProposalSponsorUpdatedAt = now

	log.Info().Str("submission_id", submissionID.String()).Str("status", status).Msg("[SUBMISSION] reviewed")
	notify.SafePublish(ctx, s.Publisher, notify.KeySubmissionReviewed, map[string]any{
		"submission_id": submissionID,
		"event_id":      sub.ProposalSponsorEventID,
		"sponsor_id":    sponsorID,
		"status":        status,
	})
	return sub, nil
}

/* =========================================================
   LISTS
   ========================================================= */

func (s *Service) list(ctx context.Context, f dto.Filter) (*dto.BucketedList, error) {
	rows, err := s.Store.ListSubmissions(ctx, f)
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil submission", err)
	}
	out := dto.Bucketize(rows)
	return &out, nil
}

// ListIncoming: submission milik sponsor caller
func (s *Service) ListIncoming(ctx context.Context, userID uuid.UUID, f dto.Filter) (*dto.BucketedList, error) {
	sponsorID, err := s.resolveSponsor(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.SponsorID, f.EventID, f.EOID = &sponsorID, nil, nil
	return s.list(ctx, f)
}

// ListForEvent: semua submission satu event milik EO caller
func (s *Service) ListForEvent(ctx context.Context, userID, eventID uuid.UUID, f dto.Filter) (*dto.BucketedList, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	ev, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.EventEOID != eoID {
		return nil, helper.ErrForbidden("Forbidden: not your event")
	}
	f.SponsorID, f.EventID, f.EOID = nil, &eventID, nil
	return s.list(ctx, f)
}

// ListForEO: semua submission di seluruh event EO caller
func (s *Service) ListForEO(ctx context.Context, userID uuid.UUID, f dto.Filter) (*dto.BucketedList, error) {
	eoID, err := s.resolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.SponsorID, f.EventID, f.EOID = nil, nil, &eoID
	return s.list(ctx, f)
}

// Detail: hanya sponsor pemilik row atau EO pemilik event
func (s *Service) Detail(ctx context.Context, userID uuid.UUID, role string, submissionID uuid.UUID) (*dto.SubmissionRow, error) {
	row, err := s.Store.FindSubmissionRow(ctx, submissionID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Submission not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil submission", err)
	}

	switch role {
	case constants.RoleSponsor:
		sponsorID, err := s.resolveSponsor(ctx, userID)
		if err != nil {
			return nil, err
		}
		if row.ProposalSponsorSponsorID == sponsorID {
			return row, nil
		}
	case constants.RoleEO:
		eoID, err := s.resolveEO(ctx, userID)
		if err != nil {
			return nil, err
		}
		if row.EventEOID == eoID {
			return row, nil
		}
	}
	return nil, helper.ErrForbidden("Forbidden: not your submission")
}

/* =========================================================
   RECOMMENDED EVENTS
   ========================================================= */

// RecommendedEvents: event mendatang yang belum dikirim ke sponsor ini,
// diurutkan berdasarkan kecocokan nama kategori/tipe dengan profil sponsor.
func (s *Service) RecommendedEvents(ctx context.Context, userID uuid.UUID, limit int) ([]dto.RecommendedEvent, error) {
	sponsorID, err := s.resolveSponsor(ctx, userID)
	if err != nil {
		return nil, err
	}
	sp, err := s.Store.FindSponsorProfile(ctx, sponsorID)
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil profil sponsor", err)
	}
	events, err := s.Store.ListUpcomingNotSent(ctx, sponsorID, s.Now())
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil event", err)
	}

	snap := s.Catalog.Snapshot()
	out := make([]dto.RecommendedEvent, 0, len(events))
	for i := range events {
		out = append(out, dto.RecommendedEvent{
			EventResponse: eventDTO.ToEventResponse(&events[i], snap),
			Score:         MatchScore(snap, &events[i], sp),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].EventStartTime.Before(out[j].EventStartTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MatchScore: +2 kategori sama, +1 tipe sponsor sama, +1 fast track.
// Dibandingkan lewat nama master karena id event & sponsor beda tabel.
func MatchScore(snap *catalog.Snapshot, ev *eventModel.EventModel, sp *userModel.SponsorProfileModel) int {
	score := 0
	if sameName(
		snap.Name(catalogModel.TableEventCategories, ev.EventCategoryID),
		snap.Name(catalogModel.TableSponsorCategories, sp.SponsorProfileCategoryID),
	) {
		score += 2
	}
	if sameName(
		snap.Name(catalogModel.TableEventSponsorTypes, ev.EventSponsorTypeID),
		snap.Name(catalogModel.TableSponsorTypes, sp.SponsorProfileTypeID),
	) {
		score++
	}
	if ev.EventIsFasttrack {
		score++
	}
	return score
}

func sameName(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
