package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/constants"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	"sponsorku_backend/internals/features/events/proposals/dto"
	"sponsorku_backend/internals/features/events/proposals/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/storage"
)

var ErrNotFound = errors.New("record not found")

// EventAccess: cek event ada & milik caller (dipenuhi events service)
type EventAccess interface {
	OwnedEvent(ctx context.Context, userID, eventID uuid.UUID) (*eventModel.EventModel, error)
}

type Store interface {
	FindProposalByEvent(ctx context.Context, eventID uuid.UUID) (*model.ProposalModel, error)
	CreateProposal(ctx context.Context, p *model.ProposalModel) error
	UpdateProposal(ctx context.Context, p *model.ProposalModel) error
}

type Service struct {
	Store  Store
	Events EventAccess
	Blob   storage.BlobService
}

func NewService(store Store, events EventAccess, blob storage.BlobService) *Service {
	return &Service{Store: store, Events: events, Blob: blob}
}

func toResponse(p *model.ProposalModel, ev *eventModel.EventModel) *dto.ProposalResponse {
	return &dto.ProposalResponse{
		ProposalModel:    *p,
		EventName:        ev.EventName,
		EventIsFasttrack: ev.EventIsFasttrack,
	}
}

func (s *Service) findByEvent(ctx context.Context, eventID uuid.UUID) (*model.ProposalModel, error) {
	p, err := s.Store.FindProposalByEvent(ctx, eventID)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Proposal not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil proposal", err)
	}
	return p, nil
}

/* =========================================================
   CREATE
   ========================================================= */

// Create: satu proposal per event. Tanpa file → pakai proposal_url event (kalau ada).
func (s *Service) Create(ctx context.Context, userID, eventID uuid.UUID, form dto.ProposalForm, pdf *multipart.FileHeader) (*dto.ProposalResponse, error) {
	ev, err := s.Events.OwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	subType, err := form.ResolveType(constants.SubmissionRegular)
	if err != nil {
		return nil, err
	}

	if _, err := s.Store.FindProposalByEvent(ctx, eventID); err == nil {
		return nil, helper.ErrConflict("Proposal already exists for this event")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, helper.ErrInternal("Gagal cek proposal", err)
	}

	p := &model.ProposalModel{
		ProposalEventID:        eventID,
		ProposalSubmissionType: subType,
	}
	var uploaded string
	switch {
	case pdf != nil:
		url, err := storage.UploadProposalPDF(ctx, s.Blob, pdf)
		if err != nil {
			if st := helper.StatusOf(err); st >= 400 && st < 500 {
				return nil, err
			}
			return nil, helper.ErrInternal("Gagal upload proposal", err)
		}
		uploaded = url
		p.ProposalPDFURL = &url
	case ev.EventProposalURL != nil:
		url := *ev.EventProposalURL
		p.ProposalPDFURL = &url
	default:
		return nil, helper.ErrValidation("File proposal (PDF) wajib diunggah")
	}

	if err := s.Store.CreateProposal(ctx, p); err != nil {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, uploaded)
		// event terhapus di tengah request → FK 23503 → 400
		return nil, helper.PGAppError(err, "Proposal already exists for this event", "Gagal membuat proposal")
	}

	log.Info().Str("proposal_id", p.ProposalID.String()).Str("event_id", eventID.String()).Msg("[PROPOSAL] created")
	return toResponse(p, ev), nil
}

/* =========================================================
   GET
   ========================================================= */

func (s *Service) Get(ctx context.Context, userID, eventID uuid.UUID) (*dto.ProposalResponse, error) {
	ev, err := s.Events.OwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	p, err := s.findByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toResponse(p, ev), nil
}

/* =========================================================
   UPDATE (ganti PDF dan/atau submission_type)
   ========================================================= */

func (s *Service) Update(ctx context.Context, userID, eventID uuid.UUID, form dto.ProposalForm, pdf *multipart.FileHeader) (*dto.ProposalResponse, error) {
	ev, err := s.Events.OwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	p, err := s.findByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	subType, err := form.ResolveType(p.ProposalSubmissionType)
	if err != nil {
		return nil, err
	}
	if pdf == nil && subType == p.ProposalSubmissionType {
		return nil, helper.ErrValidation("Tidak ada perubahan")
	}
	p.ProposalSubmissionType = subType

	var newURL, oldURL string
	if pdf != nil {
		newURL, err = storage.UploadProposalPDF(ctx, s.Blob, pdf)
		if err != nil {
			if st := helper.StatusOf(err); st >= 400 && st < 500 {
				return nil, err
			}
			return nil, helper.ErrInternal("Gagal upload proposal", err)
		}
		if p.ProposalPDFURL != nil {
			oldURL = *p.ProposalPDFURL
		}
		p.ProposalPDFURL = &newURL
	}

	if err := s.Store.UpdateProposal(ctx, p); err != nil {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, newURL)
		return nil, helper.PGAppError(err, "", "Gagal update proposal")
	}

	// file lama dihapus setelah commit, kecuali masih dipakai event
	if oldURL != "" && (ev.EventProposalURL == nil || *ev.EventProposalURL != oldURL) {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, oldURL)
	}
	return toResponse(p, ev), nil
}
