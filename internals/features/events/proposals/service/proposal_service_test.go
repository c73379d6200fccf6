package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"sponsorku_backend/internals/constants"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	"sponsorku_backend/internals/features/events/proposals/dto"
	"sponsorku_backend/internals/features/events/proposals/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/storage"
)

type fakeEvents struct {
	owner uuid.UUID
	event *eventModel.EventModel
}

func (f *fakeEvents) OwnedEvent(_ context.Context, userID, eventID uuid.UUID) (*eventModel.EventModel, error) {
	if f.event == nil || eventID != f.event.EventID {
		return nil, helper.ErrNotFound("Event not found")
	}
	if userID != f.owner {
		return nil, helper.ErrForbidden("Forbidden: not your event")
	}
	cp := *f.event
	return &cp, nil
}

type fakeStore struct {
	byEvent   map[uuid.UUID]*model.ProposalModel
	createErr error
}

func (f *fakeStore) FindProposalByEvent(_ context.Context, eventID uuid.UUID) (*model.ProposalModel, error) {
	p, ok := f.byEvent[eventID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProposal(_ context.Context, p *model.ProposalModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ProposalID = uuid.New()
	cp := *p
	f.byEvent[p.ProposalEventID] = &cp
	return nil
}

func (f *fakeStore) UpdateProposal(_ context.Context, p *model.ProposalModel) error {
	cp := *p
	f.byEvent[p.ProposalEventID] = &cp
	return nil
}

func fixture() (*Service, *fakeStore, *storage.MemoryBlobService, uuid.UUID, uuid.UUID) {
	owner := uuid.New()
	ev := &eventModel.EventModel{EventID: uuid.New(), EventName: "Hackathon"}
	store := &fakeStore{byEvent: map[uuid.UUID]*model.ProposalModel{}}
	blob := storage.NewMemoryBlobService()
	return NewService(store, &fakeEvents{owner: owner, event: ev}, blob), store, blob, owner, ev.EventID
}

func pdfHeader(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="proposal"; filename="`+name+`"`)
	h.Set("Content-Type", "application/pdf")
	part, _ := w.CreatePart(h)
	_, _ = part.Write([]byte("%PDF-1.4 " + name))
	_ = w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["proposal"][0]
}

func TestCreateProposal(t *testing.T) {
	svc, _, blob, owner, eventID := fixture()
	ctx := context.Background()

	res, err := svc.Create(ctx, owner, eventID, dto.ProposalForm{SubmissionType: "fast-track"}, pdfHeader(t, "a.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if res.ProposalSubmissionType != constants.SubmissionFastTrack {
		t.Fatalf("type = %q", res.ProposalSubmissionType)
	}
	if res.ProposalPDFURL == nil || !blob.Has(*res.ProposalPDFURL) {
		t.Fatal("pdf not stored")
	}

	// proposal kedua untuk event yang sama
	_, err = svc.Create(ctx, owner, eventID, dto.ProposalForm{}, pdfHeader(t, "b.pdf"))
	if helper.StatusOf(err) != 409 {
		t.Fatalf("want 409, got %v", err)
	}
	if blob.Len() != 1 {
		t.Fatal("rejected proposal must not leave a file")
	}
}

func TestCreateProposalValidation(t *testing.T) {
	tests := []struct {
		name   string
		user   func(owner uuid.UUID) uuid.UUID
		form   dto.ProposalForm
		pdf    bool
		status int
	}{
		{"no file and no event pdf", func(o uuid.UUID) uuid.UUID { return o }, dto.ProposalForm{}, false, 400},
		{"bad type", func(o uuid.UUID) uuid.UUID { return o }, dto.ProposalForm{SubmissionType: "VIP"}, true, 400},
		{"not owner", func(uuid.UUID) uuid.UUID { return uuid.New() }, dto.ProposalForm{}, true, 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, owner, eventID := fixture()
			var fh *multipart.FileHeader
			if tt.pdf {
				fh = pdfHeader(t, "x.pdf")
			}
			_, err := svc.Create(context.Background(), tt.user(owner), eventID, tt.form, fh)
			if got := helper.StatusOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d (err=%v)", got, tt.status, err)
			}
		})
	}
}

// insert ditolak DB setelah pre-check lolos (request paralel / event baru dihapus)
func TestCreateProposalInsertConstraint(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unique race", &pgconn.PgError{Code: "23505", ConstraintName: "uq_proposals_event"}, 409},
		{"event deleted", &pgconn.PgError{Code: "23503", ConstraintName: "fk_proposals_event"}, 400},
		{"db down", errors.New("connection reset"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, blob, owner, eventID := fixture()
			store.createErr = tt.err

			_, err := svc.Create(context.Background(), owner, eventID, dto.ProposalForm{}, pdfHeader(t, "a.pdf"))
			if got := helper.StatusOf(err); got != tt.status {
				t.Fatalf("status = %d, want %d (err=%v)", got, tt.status, err)
			}
			if blob.Len() != 0 {
				t.Fatalf("uploaded pdf should be removed, %d objects left", blob.Len())
			}
		})
	}
}

func TestCreateProposalFallsBackToEventPDF(t *testing.T) {
	svc, _, _, owner, eventID := fixture()
	url := "mem://sponsorku/proposals/from-event.pdf"
	svc.Events.(*fakeEvents).event.EventProposalURL = &url

	res, err := svc.Create(context.Background(), owner, eventID, dto.ProposalForm{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.ProposalPDFURL == nil || *res.ProposalPDFURL != url {
		t.Fatal("should reuse event proposal url")
	}
	if res.ProposalSubmissionType != constants.SubmissionRegular {
		t.Fatal("default type should be REGULAR")
	}
}

func TestUpdateProposalReplacesPDF(t *testing.T) {
	svc, store, blob, owner, eventID := fixture()
	ctx := context.Background()
	created, err := svc.Create(ctx, owner, eventID, dto.ProposalForm{}, pdfHeader(t, "v1.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	oldURL := *created.ProposalPDFURL

	res, err := svc.Update(ctx, owner, eventID, dto.ProposalForm{}, pdfHeader(t, "v2.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if blob.Has(oldURL) {
		t.Fatal("old pdf should be deleted after update")
	}
	if !blob.Has(*res.ProposalPDFURL) || *store.byEvent[eventID].ProposalPDFURL != *res.ProposalPDFURL {
		t.Fatal("new pdf not persisted")
	}

	if _, err := svc.Update(ctx, owner, eventID, dto.ProposalForm{}, nil); helper.StatusOf(err) != 400 {
		t.Fatalf("empty update should be 400, got %v", err)
	}
	res, err = svc.Update(ctx, owner, eventID, dto.ProposalForm{SubmissionType: "FAST_TRACK"}, nil)
	if err != nil || res.ProposalSubmissionType != constants.SubmissionFastTrack {
		t.Fatalf("type switch failed: %v", err)
	}
}

func TestGetProposalMissing(t *testing.T) {
	svc, _, _, owner, eventID := fixture()
	if _, err := svc.Get(context.Background(), owner, eventID); helper.StatusOf(err) != 404 {
		t.Fatalf("want 404, got %v", err)
	}
}
