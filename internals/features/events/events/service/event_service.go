package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sponsorku_backend/internals/features/events/events/dto"
	"sponsorku_backend/internals/features/events/events/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/storage"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	EOProfileIDByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	CreateEvent(ctx context.Context, e *model.EventModel) error
	FindEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error)
	ListEventsByEO(ctx context.Context, eoID uuid.UUID, q dto.ListEventQuery, offset, limit int) ([]model.EventModel, int64, error)
	UpdateEvent(ctx context.Context, e *model.EventModel) error
	// DeleteEventCascade: proposal + submission ikut terhapus, payments.event_id → NULL.
	// Return URL file proposal yang ikut terhapus.
	DeleteEventCascade(ctx context.Context, id uuid.UUID) ([]string, error)
}

// Uploads: file opsional saat create
type Uploads struct {
	Image    *multipart.FileHeader
	Proposal *multipart.FileHeader
}

type Service struct {
	Store   Store
	Blob    storage.BlobService
	Catalog *catalog.Registry
	Now     func() time.Time
}

func NewService(store Store, blob storage.BlobService, reg *catalog.Registry) *Service {
	return &Service{
		Store:   store,
		Blob:    blob,
		Catalog: reg,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// ResolveEO: user id → eo_profile_id (403 kalau belum punya profil EO)
func (s *Service) ResolveEO(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	eoID, err := s.Store.EOProfileIDByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return uuid.Nil, helper.ErrForbidden("EO profile not found")
	}
	if err != nil {
		return uuid.Nil, helper.ErrInternal("Gagal mengambil profil EO", err)
	}
	return eoID, nil
}

func (s *Service) findEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	ev, err := s.Store.FindEvent(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, helper.ErrNotFound("Event not found")
	}
	if err != nil {
		return nil, helper.ErrInternal("Gagal mengambil event", err)
	}
	return ev, nil
}

// OwnedEvent: event ada (404) dan milik caller (403)
func (s *Service) OwnedEvent(ctx context.Context, userID, eventID uuid.UUID) (*model.EventModel, error) {
	eoID, err := s.ResolveEO(ctx, userID)
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
	return ev, nil
}

/* =========================================================
   CREATE
   ========================================================= */

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req dto.CreateEventRequest, files Uploads) (*dto.EventResponse, error) {
	eoID, err := s.ResolveEO(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Name == "" {
		return nil, helper.ErrValidation("name wajib diisi")
	}
	start, end, err := req.ParseTimes()
	if err != nil {
		return nil, err
	}
	if err := ValidateEventTimes(start, end, s.Now()); err != nil {
		return nil, err
	}
	ev := req.ToModel(eoID, start, end)
	snap := s.Catalog.Snapshot()
	if err := snap.CheckRefs(dto.CatalogRefsOf(ev)...); err != nil {
		return nil, err
	}

	// upload dulu, kompensasi kalau insert gagal
	var uploaded []string
	if files.Image != nil {
		url, err := storage.UploadImageAsWebP(ctx, s.Blob, storage.FolderEvents, files.Image)
		if err != nil {
			return nil, uploadErr(err, "Gagal upload gambar event")
		}
		uploaded = append(uploaded, url)
		ev.EventImageURL = &url
	}
	if files.Proposal != nil {
		url, err := storage.UploadProposalPDF(ctx, s.Blob, files.Proposal)
		if err != nil {
			storage.Cleanup(context.WithoutCancel(ctx), s.Blob, uploaded...)
			return nil, uploadErr(err, "Gagal upload proposal")
		}
		uploaded = append(uploaded, url)
		ev.EventProposalURL = &url
	}

	if err := s.Store.CreateEvent(ctx, ev); err != nil {
		storage.Cleanup(context.WithoutCancel(ctx), s.Blob, uploaded...)
		// master dihapus setelah snapshot dimuat → FK 23503 → 400
		return nil, helper.PGAppError(err, "", "Gagal membuat event")
	}

	log.Info().Str("event_id", ev.EventID.String()).Str("eo_id", eoID.String()).Msg("[EVENT] created")
	res := dto.ToEventResponse(ev, snap)
	return &res, nil
}

// uploadErr: error validasi file (4xx) diteruskan, selain itu 500
func uploadErr(err error, msg string) error {
	if st := helper.StatusOf(err); st >= 400 && st < 500 {
		return err
	}
	return helper.ErrInternal(msg, err)
}

/* =========================================================
   READ
   ========================================================= */

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, q dto.ListEventQuery, p helper.Paging) ([]dto.EventResponse, helper.Pagination, error) {
	eoID, err := s.ResolveEO(ctx, userID)
	if err != nil {
		return nil, helper.Pagination{}, err
	}
	q.Now = s.Now()
	rows, total, err := s.Store.ListEventsByEO(ctx, eoID, q, p.Offset(), p.Limit())
	if err != nil {
		return nil, helper.Pagination{}, helper.ErrInternal("Gagal mengambil event", err)
	}
	return dto.ToEventResponseList(rows, s.Catalog.Snapshot()), helper.BuildPaginationFromPage(total, p.Page, p.PerPage), nil
}

// Detail: semua role yang login boleh melihat
func (s *Service) Detail(ctx context.Context, eventID uuid.UUID) (*dto.EventResponse, error) {
	ev, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	res := dto.ToEventResponse(ev, s.Catalog.Snapshot())
	return &res, nil
}

/* =========================================================
   PATCH
   ========================================================= */

func (s *Service) Patch(ctx context.Context, userID, eventID uuid.UUID, req dto.PatchEventRequest) (*dto.EventResponse, error) {
	ev, err := s.OwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	startChanged, err := req.Apply(ev)
	if err != nil {
		return nil, err
	}
	if !ev.EventEndTime.After(ev.EventStartTime) {
		return nil, helper.ErrValidation("End time must be after start time")
	}
	if startChanged && ev.EventStartTime.Before(s.Now()) {
		return nil, helper.ErrValidation("Start time cannot be in the past")
	}
	snap := s.Catalog.Snapshot()
	if err := snap.CheckRefs(dto.CatalogRefsOf(ev)...); err != nil {
		return nil, err
	}

	if err := s.Store.UpdateEvent(ctx, ev); err != nil {
		return nil, helper.PGAppError(err, "", "Gagal update event")
	}
	res := dto.ToEventResponse(ev, snap)
	return &res, nil
}

/* =========================================================
   DELETE
   ========================================================= */

func (s *Service) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	ev, err := s.OwnedEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	proposalFiles, err := s.Store.DeleteEventCascade(ctx, eventID)
	if errors.Is(err, ErrNotFound) {
		return helper.ErrNotFound("Event not found")
	}
	if err != nil {
		return helper.ErrInternal("Gagal menghapus event", err)
	}

	// setelah commit: file dipindah ke trash (best-effort)
	files := append(ev.FileURLs(), proposalFiles...)
	storage.Trash(context.WithoutCancel(ctx), s.Blob, dedupe(files)...)

	log.Info().Str("event_id", eventID.String()).Int("files", len(files)).Msg("[EVENT] deleted")
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
