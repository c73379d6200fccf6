package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sponsorku_backend/internals/constants"
	eventModel "sponsorku_backend/internals/features/events/events/model"
	proposalModel "sponsorku_backend/internals/features/events/proposals/model"
	"sponsorku_backend/internals/features/events/submissions/dto"
	"sponsorku_backend/internals/features/events/submissions/model"
	"sponsorku_backend/internals/features/events/submissions/service"
	catalog "sponsorku_backend/internals/features/masters/catalog/service"
	userModel "sponsorku_backend/internals/features/users/user/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/notify"
)

/* ===================== fake store ===================== */

type fakeStore struct {
	eoID, sponsorID uuid.UUID
	eoUser          uuid.UUID
	sponsorUser     uuid.UUID
	event           *eventModel.EventModel
	proposal        *proposalModel.ProposalModel
	subs            map[uuid.UUID]*model.ProposalSponsorModel
}

func (f *fakeStore) EOProfileIDByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	if userID != f.eoUser {
		return uuid.Nil, service.ErrNotFound
	}
	return f.eoID, nil
}

func (f *fakeStore) SponsorProfileIDByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	if userID != f.sponsorUser {
		return uuid.Nil, service.ErrNotFound
	}
	return f.sponsorID, nil
}

func (f *fakeStore) FindSponsorProfile(_ context.Context, id uuid.UUID) (*userModel.SponsorProfileModel, error) {
	if id != f.sponsorID {
		return nil, service.ErrNotFound
	}
	return &userModel.SponsorProfileModel{SponsorProfileID: id}, nil
}

func (f *fakeStore) FindEvent(_ context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	if id != f.event.EventID {
		return nil, service.ErrNotFound
	}
	cp := *f.event
	return &cp, nil
}

func (f *fakeStore) FindProposal(_ context.Context, id uuid.UUID) (*proposalModel.ProposalModel, error) {
	if f.proposal == nil || id != f.proposal.ProposalID {
		return nil, service.ErrNotFound
	}
	cp := *f.proposal
	return &cp, nil
}

func (f *fakeStore) GetOrCreateProposal(_ context.Context, ev *eventModel.EventModel, subType string) (*proposalModel.ProposalModel, error) {
	if f.proposal == nil {
		f.proposal = &proposalModel.ProposalModel{
			ProposalID:             uuid.New(),
			ProposalEventID:        ev.EventID,
			ProposalSubmissionType: subType,
		}
	}
	cp := *f.proposal
	return &cp, nil
}

func (f *fakeStore) CreateSubmission(_ context.Context, s *model.ProposalSponsorModel) error {
	for _, existing := range f.subs {
		if existing.ProposalSponsorProposalID == s.ProposalSponsorProposalID &&
			existing.ProposalSponsorSponsorID == s.ProposalSponsorSponsorID {
			return service.ErrDuplicate
		}
	}
	s.ProposalSponsorID = uuid.New()
	cp := *s
	f.subs[s.ProposalSponsorID] = &cp
	return nil
}

func (f *fakeStore) FindSubmission(_ context.Context, id uuid.UUID) (*model.ProposalSponsorModel, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) FindSubmissionRow(context.Context, uuid.UUID) (*dto.SubmissionRow, error) {
	return nil, service.ErrNotFound
}

func (f *fakeStore) ReviewSubmission(_ context.Context, id uuid.UUID, status string, feedback *string, at time.Time) (int64, error) {
	s, ok := f.subs[id]
	if !ok || s.ProposalSponsorStatus != constants.SubmissionPending {
		return 0, nil
	}
	s.ProposalSponsorStatus = status
	s.ProposalSponsorFeedback = feedback
	s.ProposalSponsorReviewedAt = &at
	return 1, nil
}

func (f *fakeStore) ListSubmissions(context.Context, dto.Filter) ([]dto.SubmissionRow, error) {
	return nil, nil
}

func (f *fakeStore) ListUpcomingNotSent(context.Context, uuid.UUID, time.Time) ([]eventModel.EventModel, error) {
	return nil, nil
}

/* ===================== helpers ===================== */

// as: pengganti middleware JWT, isi locals user & role
func as(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUserRole, role)
		return c.Next()
	}
}

func newTestApp() (*fiber.App, *fakeStore, *notify.Recorder) {
	store := &fakeStore{
		eoID:        uuid.New(),
		sponsorID:   uuid.New(),
		eoUser:      uuid.New(),
		sponsorUser: uuid.New(),
		subs:        map[uuid.UUID]*model.ProposalSponsorModel{},
	}
	store.event = &eventModel.EventModel{
		EventID:        uuid.New(),
		EventEOID:      store.eoID,
		EventName:      "Tech Fest",
		EventStartTime: time.Now().Add(72 * time.Hour),
		EventEndTime:   time.Now().Add(80 * time.Hour),
	}
	rec := &notify.Recorder{}
	ctrl := NewSubmissionController(service.NewService(store, rec, catalog.NewStaticRegistry(nil)))

	app := fiber.New()
	app.Post("/events/:id/submissions", as(store.eoUser, constants.RoleEO), ctrl.SendEvent)
	app.Patch("/sponsors/incoming/:id/review", as(store.sponsorUser, constants.RoleSponsor), ctrl.Review)
	return app, store, rec
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, out
}

/* ===================== tests ===================== */

func TestSendAndReviewFlow(t *testing.T) {
	app, store, rec := newTestApp()
	sendPath := "/events/" + store.event.EventID.String() + "/submissions"
	sendBody := `{"sponsor_id":"` + store.sponsorID.String() + `"}`

	status, body := do(t, app, http.MethodPost, sendPath, sendBody)
	if status != http.StatusCreated {
		t.Fatalf("send: status = %d, body = %v", status, body)
	}
	data, _ := body["data"].(map[string]any)
	sub, _ := data["submission"].(map[string]any)
	subID, _ := sub["proposal_sponsor_id"].(string)
	if subID == "" || sub["proposal_sponsor_status"] != constants.SubmissionPending {
		t.Fatalf("unexpected submission %v", sub)
	}
	if data["requires_payment"] != false {
		t.Fatalf("regular send should not require payment: %v", data)
	}

	// kirim ulang ke sponsor yang sama
	if status, _ := do(t, app, http.MethodPost, sendPath, sendBody); status != http.StatusConflict {
		t.Fatalf("resend: status = %d, want 409", status)
	}

	reviewPath := "/sponsors/incoming/" + subID + "/review"
	status, body = do(t, app, http.MethodPatch, reviewPath, `{"status":"ACCEPTED"}`)
	if status != http.StatusOK {
		t.Fatalf("review: status = %d, body = %v", status, body)
	}
	reviewed, _ := body["data"].(map[string]any)
	if reviewed["proposal_sponsor_status"] != constants.SubmissionAccepted {
		t.Fatalf("status not updated: %v", reviewed)
	}
	fb, present := reviewed["proposal_sponsor_feedback"]
	if !present || fb != nil {
		t.Fatalf("regular review should return feedback: null, got present=%v value=%v", present, fb)
	}

	// review kedua ditolak
	if status, _ := do(t, app, http.MethodPatch, reviewPath, `{"status":"REJECTED"}`); status != http.StatusConflict {
		t.Fatalf("re-review: status = %d, want 409", status)
	}

	if got := rec.Keys(); len(got) != 2 || got[0] != notify.KeySubmissionCreated || got[1] != notify.KeySubmissionReviewed {
		t.Fatalf("published keys = %v", got)
	}
}

func TestSubmissionBadBodies(t *testing.T) {
	app, store, _ := newTestApp()
	sendPath := "/events/" + store.event.EventID.String() + "/submissions"
	sub := &model.ProposalSponsorModel{
		ProposalSponsorID:             uuid.New(),
		ProposalSponsorSponsorID:      store.sponsorID,
		ProposalSponsorSubmissionType: constants.SubmissionRegular,
		ProposalSponsorStatus:         constants.SubmissionPending,
	}
	store.subs[sub.ProposalSponsorID] = sub
	reviewPath := "/sponsors/incoming/" + sub.ProposalSponsorID.String() + "/review"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"send empty body", http.MethodPost, sendPath, ""},
		{"send malformed json", http.MethodPost, sendPath, `{"sponsor_id":`},
		{"send invalid sponsor id", http.MethodPost, sendPath, `{"sponsor_id":"abc"}`},
		{"send missing sponsor id", http.MethodPost, sendPath, `{}`},
		{"send bad event id", http.MethodPost, "/events/not-a-uuid/submissions", `{"sponsor_id":"` + store.sponsorID.String() + `"}`},
		{"review empty body", http.MethodPatch, reviewPath, ""},
		{"review malformed json", http.MethodPatch, reviewPath, `{"status"`},
		{"review unknown status", http.MethodPatch, reviewPath, `{"status":"MAYBE"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body=%v)", status, body)
			}
			if body["success"] != false {
				t.Fatalf("error envelope expected, got %v", body)
			}
		})
	}

	if len(store.subs) != 1 || store.subs[sub.ProposalSponsorID].ProposalSponsorStatus != constants.SubmissionPending {
		t.Fatal("rejected requests must not change state")
	}
}
