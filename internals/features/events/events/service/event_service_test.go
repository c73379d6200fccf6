package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"sponsorku_backend/internals/features/events/events/dto"
	"sponsorku_backend/internals/features/events/events/model"
	catalogModel "sponsorku_backend/internals/features/masters/catalog/model"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/storage"
)

var fixedNow = time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)

/* ===================== fakes ===================== */

type fakeStore struct {
	eoByUser   map[uuid.UUID]uuid.UUID
	events     map[uuid.UUID]*model.EventModel
	createErr  error
	updateErr  error
	deleted    []uuid.UUID
	extraFiles []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{eoByUser: map[uuid.UUID]uuid.UUID{}, events: map[uuid.UUID]*model.EventModel{}}
}

func (f *fakeStore) EOProfileIDByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.eoByUser[userID]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, e *model.EventModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.EventID = uuid.New()
	cp := *e
	f.events[e.EventID] = &cp
	return nil
}

func (f *fakeStore) FindEvent(_ context.Context, id uuid.UUID) (*model.EventModel, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) ListEventsByEO(_ context.Context, eoID uuid.UUID, q dto.ListEventQuery, offset, limit int) ([]model.EventModel, int64, error) {
	var out []model.EventModel
	for _, e := range f.events {
		if e.EventEOID != eoID {
			continue
		}
		if q.Upcoming && !e.EventStartTime.After(q.Now) {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, e *model.EventModel) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *e
	f.events[e.EventID] = &cp
	return nil
}

func (f *fakeStore) DeleteEventCascade(_ context.Context, id uuid.UUID) ([]string, error) {
	if _, ok := f.events[id]; !ok {
		return nil, ErrNotFound
	}
	delete(f.events, id)
	f.deleted = append(f.deleted, id)
	return f.extraFiles, nil
}

/* ===================== helpers ===================== */

func newTestService(store Store, blob storage.BlobService) *Service {
	svc := NewService(store, blob, catalog.NewStaticRegistry(map[string][]catalog.Entry{
		catalogModel.TableEventCategories: {{ID: 1, Name: "Technology"}},
		catalogModel.TableEventModes:      {{ID: 1, Name: "Offline"}},
	}))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func pdfHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="proposal"; filename="deck.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, _ := w.CreatePart(h)
	_, _ = part.Write([]byte("%PDF-1.7 deck"))
	_ = w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["proposal"][0]
}

func intPtr(v int) *int { return &v }

/* ===================== tests ===================== */

func TestValidateEventTimes(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{"valid", fixedNow.Add(time.Hour), fixedNow.Add(2 * time.Hour), false},
		{"end before start", fixedNow.Add(2 * time.Hour), fixedNow.Add(time.Hour), true},
		{"end equals start", fixedNow.Add(time.Hour), fixedNow.Add(time.Hour), true},
		{"start in past", fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEventTimes(tt.start, tt.end, fixedNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && helper.StatusOf(err) != 400 {
				t.Fatalf("status = %d", helper.StatusOf(err))
			}
		})
	}
}

func TestCreateEvent(t *testing.T) {
	user, eo := uuid.New(), uuid.New()
	tests := []struct {
		name   string
		user   uuid.UUID
		req    dto.CreateEventRequest
		status int
	}{
		{"valid", user, dto.CreateEventRequest{Name: " Tech Fest ", StartTime: "2030-02-01T09:00:00Z", EndTime: "2030-02-01T17:00:00Z", CategoryID: intPtr(1)}, 0},
		{"end before start", user, dto.CreateEventRequest{Name: "X", StartTime: "2030-02-01 17:00:00", EndTime: "2030-02-01 09:00:00"}, 400},
		{"start in past", user, dto.CreateEventRequest{Name: "X", StartTime: "2029-12-01", EndTime: "2030-02-01"}, 400},
		{"missing times", user, dto.CreateEventRequest{Name: "X"}, 400},
		{"bad format", user, dto.CreateEventRequest{Name: "X", StartTime: "besok", EndTime: "lusa"}, 400},
		{"missing name", user, dto.CreateEventRequest{StartTime: "2030-02-01", EndTime: "2030-02-02"}, 400},
		{"unknown category", user, dto.CreateEventRequest{Name: "X", StartTime: "2030-02-01", EndTime: "2030-02-02", CategoryID: intPtr(42)}, 400},
		{"no eo profile", uuid.New(), dto.CreateEventRequest{Name: "X", StartTime: "2030-02-01", EndTime: "2030-02-02"}, 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.eoByUser[user] = eo
			svc := newTestService(store, storage.NewMemoryBlobService())

			res, err := svc.Create(context.Background(), tt.user, tt.req, Uploads{})
			if tt.status != 0 {
				if got := helper.StatusOf(err); got != tt.status {
					t.Fatalf("status = %d, want %d (err=%v)", got, tt.status, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.EventName != "Tech Fest" || res.EventEOID != eo {
				t.Fatalf("unexpected event %+v", res.EventModel)
			}
			if res.Category == nil || res.Category.Name != "Technology" {
				t.Fatalf("category not resolved: %+v", res.Category)
			}
		})
	}
}

func TestCreateEventCleansUploadWhenInsertFails(t *testing.T) {
	user := uuid.New()
	store := newFakeStore()
	store.eoByUser[user] = uuid.New()
	store.createErr = errors.New("insert failed")
	blob := storage.NewMemoryBlobService()
	svc := newTestService(store, blob)

	req := dto.CreateEventRequest{Name: "Expo", StartTime: "2030-03-01", EndTime: "2030-03-02"}
	_, err := svc.Create(context.Background(), user, req, Uploads{Proposal: pdfHeader(t)})
	if helper.StatusOf(err) != 500 {
		t.Fatalf("want 500, got %v", err)
	}
	if blob.Len() != 0 {
		t.Fatalf("uploaded proposal should be removed, %d objects left", blob.Len())
	}
}

// master dihapus setelah snapshot dimuat: insert kena FK, bukan 500
func TestCreateEventStaleCatalogRef(t *testing.T) {
	user := uuid.New()
	store := newFakeStore()
	store.eoByUser[user] = uuid.New()
	store.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_events_category"}
	blob := storage.NewMemoryBlobService()
	svc := newTestService(store, blob)

	req := dto.CreateEventRequest{Name: "Expo", StartTime: "2030-03-01", EndTime: "2030-03-02", CategoryID: intPtr(1)}
	_, err := svc.Create(context.Background(), user, req, Uploads{Proposal: pdfHeader(t)})
	if helper.StatusOf(err) != 400 {
		t.Fatalf("want 400, got %v", err)
	}
	if blob.Len() != 0 {
		t.Fatalf("uploaded proposal should be removed, %d objects left", blob.Len())
	}
}

func TestCreateEventStoresProposal(t *testing.T) {
	user := uuid.New()
	store := newFakeStore()
	store.eoByUser[user] = uuid.New()
	blob := storage.NewMemoryBlobService()
	svc := newTestService(store, blob)

	req := dto.CreateEventRequest{Name: "Expo", StartTime: "2030-03-01", EndTime: "2030-03-02"}
	res, err := svc.Create(context.Background(), user, req, Uploads{Proposal: pdfHeader(t)})
	if err != nil {
		t.Fatal(err)
	}
	if res.EventProposalURL == nil || !blob.Has(*res.EventProposalURL) {
		t.Fatal("proposal url not stored")
	}
}

func seedEvent(store *fakeStore, eo uuid.UUID) *model.EventModel {
	ev := &model.EventModel{
		EventID:        uuid.New(),
		EventEOID:      eo,
		EventName:      "Seminar",
		EventStartTime: fixedNow.Add(48 * time.Hour),
		EventEndTime:   fixedNow.Add(50 * time.Hour),
	}
	store.events[ev.EventID] = ev
	return ev
}

func patchReq(t *testing.T, body string) dto.PatchEventRequest {
	t.Helper()
	var req dto.PatchEventRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	return req
}

func TestPatchEvent(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	tests := []struct {
		name   string
		user   uuid.UUID
		body   string
		status int
	}{
		{"rename", owner, `{"name":"Seminar Nasional","location":"Bandung"}`, 0},
		{"not owner", other, `{"name":"Hijack"}`, 403},
		{"end before start", owner, `{"end_time":"2030-01-11T00:00:00Z"}`, 400},
		{"start moved to past", owner, `{"start_time":"2030-01-01T00:00:00Z"}`, 400},
		{"blank name", owner, `{"name":"  "}`, 400},
		{"unknown mode", owner, `{"mode_id":9}`, 400},
		{"clear category", owner, `{"category_id":null}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.eoByUser[owner] = uuid.New()
			store.eoByUser[other] = uuid.New()
			ev := seedEvent(store, store.eoByUser[owner])
			svc := newTestService(store, storage.NewMemoryBlobService())

			_, err := svc.Patch(context.Background(), tt.user, ev.EventID, patchReq(t, tt.body))
			if got := helper.StatusOf(err); tt.status != 0 && got != tt.status {
				t.Fatalf("status = %d, want %d (err=%v)", got, tt.status, err)
			}
			if tt.status == 0 && err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestPatchEventStaleCatalogRef(t *testing.T) {
	owner := uuid.New()
	store := newFakeStore()
	store.eoByUser[owner] = uuid.New()
	ev := seedEvent(store, store.eoByUser[owner])
	store.updateErr = fmt.Errorf("update: %w", &pgconn.PgError{Code: "23503"})
	svc := newTestService(store, storage.NewMemoryBlobService())

	_, err := svc.Patch(context.Background(), owner, ev.EventID, patchReq(t, `{"category_id":1}`))
	if helper.StatusOf(err) != 400 {
		t.Fatalf("want 400, got %v", err)
	}

	store.updateErr = errors.New("connection reset")
	_, err = svc.Patch(context.Background(), owner, ev.EventID, patchReq(t, `{"name":"Expo 2"}`))
	if helper.StatusOf(err) != 500 {
		t.Fatalf("want 500, got %v", err)
	}
}

func TestPatchKeepsPastStartWhenUnchanged(t *testing.T) {
	owner := uuid.New()
	store := newFakeStore()
	store.eoByUser[owner] = uuid.New()
	ev := seedEvent(store, store.eoByUser[owner])
	ev.EventStartTime = fixedNow.Add(-time.Hour) // sudah berjalan
	svc := newTestService(store, storage.NewMemoryBlobService())

	if _, err := svc.Patch(context.Background(), owner, ev.EventID, patchReq(t, `{"description":"Sesi 2"}`)); err != nil {
		t.Fatalf("patch of running event should be allowed: %v", err)
	}
}

func TestDeleteEventTrashesFiles(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	store := newFakeStore()
	store.eoByUser[owner] = uuid.New()
	blob := storage.NewMemoryBlobService()
	img, _ := blob.Put(ctx, "events/a.webp", []byte("img"), "image/webp")
	pdf, _ := blob.Put(ctx, "proposals/b.pdf", []byte("%PDF"), "application/pdf")

	ev := seedEvent(store, store.eoByUser[owner])
	ev.EventImageURL = &img
	store.extraFiles = []string{pdf, img}
	svc := newTestService(store, blob)

	if err := svc.Delete(ctx, owner, ev.EventID); err != nil {
		t.Fatal(err)
	}
	if len(store.deleted) != 1 {
		t.Fatal("cascade delete not called")
	}
	if blob.Len() != 0 || blob.TrashedLen() != 2 {
		t.Fatalf("files should be trashed, live=%d trashed=%d", blob.Len(), blob.TrashedLen())
	}
}

func TestDeleteEventNotOwner(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	store := newFakeStore()
	store.eoByUser[owner] = uuid.New()
	store.eoByUser[other] = uuid.New()
	ev := seedEvent(store, store.eoByUser[owner])
	svc := newTestService(store, storage.NewMemoryBlobService())

	if err := svc.Delete(context.Background(), other, ev.EventID); helper.StatusOf(err) != 403 {
		t.Fatalf("want 403, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, uuid.New()); helper.StatusOf(err) != 404 {
		t.Fatalf("want 404, got %v", err)
	}
}

func TestListMineUpcoming(t *testing.T) {
	owner := uuid.New()
	store := newFakeStore()
	store.eoByUser[owner] = uuid.New()
	seedEvent(store, store.eoByUser[owner])
	past := seedEvent(store, store.eoByUser[owner])
	past.EventStartTime = fixedNow.Add(-24 * time.Hour)
	svc := newTestService(store, storage.NewMemoryBlobService())

	rows, pg, err := svc.ListMine(context.Background(), owner, dto.ListEventQuery{Upcoming: true}, helper.Paging{Page: 1, PerPage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || pg.Total != 1 {
		t.Fatalf("want 1 upcoming, got %d (total %d)", len(rows), pg.Total)
	}
}
