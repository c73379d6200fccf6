package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sponsorku_backend/internals/constants"
	eventDTO "sponsorku_backend/internals/features/events/events/dto"
	"sponsorku_backend/internals/features/events/submissions/model"
	helper "sponsorku_backend/internals/helpers"
	"sponsorku_backend/internals/helpers/dbtime"
)

/* =========================================================
   SEND (EO → sponsor)
   ========================================================= */

type SendEventRequest struct {
	SponsorID      uuid.UUID `json:"sponsor_id"`
	SubmissionType string    `json:"submission_type"`
}

type SendProposalRequest struct {
	SubmissionType string `json:"submission_type"`
}

// ResolveSubmissionType: kosong → fallback, nilai lain divalidasi
func ResolveSubmissionType(raw, fallback string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	t := constants.NormalizeSubmissionType(raw)
	if t == "" {
		return "", helper.ErrValidation("submission_type harus REGULAR atau FAST_TRACK")
	}
	return t, nil
}

type SendResult struct {
	Submission      model.ProposalSponsorModel `json:"submission"`
	RequiresPayment bool                       `json:"requires_payment"`
}

/* =========================================================
   REVIEW (sponsor)
   ========================================================= */

// ReviewRequest: status ACCEPTED/REJECTED atau decision ACCEPT/REJECT
type ReviewRequest struct {
	Status   string  `json:"status"`
	Decision string  `json:"decision"`
	Feedback *string `json:"feedback"`
}

func (r *ReviewRequest) ResolveStatus() (string, error) {
	raw := r.Status
	if strings.TrimSpace(raw) == "" {
		raw = r.Decision
	}
	st := constants.NormalizeDecision(raw)
	if st == "" {
		return "", helper.ErrValidation("status harus ACCEPTED atau REJECTED")
	}
	return st, nil
}

// ResolveFeedback: FAST_TRACK wajib feedback, REGULAR tidak boleh ada feedback.
// Feedback kosong/whitespace dianggap tidak ada.
func (r *ReviewRequest) ResolveFeedback(submissionType string) (*string, error) {
	var fb *string
	if r.Feedback != nil {
		if v := strings.TrimSpace(*r.Feedback); v != "" {
			fb = &v
		}
	}
	switch submissionType {
	case constants.SubmissionFastTrack:
		if fb == nil {
			return nil, helper.ErrValidation("Feedback wajib diisi untuk fast track")
		}
	default:
		if fb != nil {
			return nil, helper.ErrValidation("Feedback hanya untuk submission fast track")
		}
	}
	return fb, nil
}

/* =========================================================
   LIST
   ========================================================= */

// Filter: dipakai semua list (sponsor / event / EO)
type Filter struct {
	SponsorID      *uuid.UUID
	EventID        *uuid.UUID
	EOID           *uuid.UUID
	Status         string
	SubmissionType string
	From           *time.Time
	To             *time.Time
}

// ParseFilter: ?status=&submission_type=&from=&to=
func ParseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st := strings.ToUpper(raw)
		switch st {
		case constants.SubmissionPending, constants.SubmissionAccepted, constants.SubmissionRejected:
			f.Status = st
		default:
			return f, helper.ErrValidation("status tidak valid")
		}
	}
	if raw := strings.TrimSpace(c.Query("submission_type")); raw != "" {
		t := constants.NormalizeSubmissionType(raw)
		if t == "" {
			return f, helper.ErrValidation("submission_type tidak valid")
		}
		f.SubmissionType = t
	}
	var err error
	if f.From, err = dbtime.ParseRangeBound(c.Query("from"), false); err != nil {
		return f, helper.ErrValidation("from tidak valid (RFC3339 / YYYY-MM-DD)")
	}
	if f.To, err = dbtime.ParseRangeBound(c.Query("to"), true); err != nil {
		return f, helper.ErrValidation("to tidak valid (RFC3339 / YYYY-MM-DD)")
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, helper.ErrValidation("to harus setelah from")
	}
	return f, nil
}

// SubmissionRow: submission + ringkasan event + nama organisasi EO
type SubmissionRow struct {
	model.ProposalSponsorModel
	EventName          string    `gorm:"column:event_name" json:"event_name"`
	EventLocation      *string   `gorm:"column:event_location" json:"event_location,omitempty"`
	EventImageURL      *string   `gorm:"column:event_image_url" json:"event_image_url,omitempty"`
	EventStartTime     time.Time `gorm:"column:event_start_time" json:"event_start_time"`
	EventEndTime       time.Time `gorm:"column:event_end_time" json:"event_end_time"`
	EventIsFasttrack   bool      `gorm:"column:event_is_fasttrack" json:"event_is_fasttrack"`
	EventEOID          uuid.UUID `gorm:"column:event_eo_id" json:"event_eo_id"`
	ProposalPDFURL     *string   `gorm:"column:proposal_pdf_url" json:"proposal_pdf_url,omitempty"`
	EOOrganizationName string    `gorm:"column:eo_organization_name" json:"eo_organization_name"`
	SponsorCompanyName string    `gorm:"column:sponsor_company_name" json:"sponsor_company_name"`
}

type BucketedList struct {
	Total     int             `json:"total"`
	Items     []SubmissionRow `json:"items"`
	FastTrack []SubmissionRow `json:"fast_track"`
	Regular   []SubmissionRow `json:"regular"`
}

// Bucketize: urutan input dipertahankan (sudah created_at DESC dari store)
func Bucketize(rows []SubmissionRow) BucketedList {
	out := BucketedList{
		Total:     len(rows),
		Items:     make([]SubmissionRow, 0, len(rows)),
		FastTrack: []SubmissionRow{},
		Regular:   []SubmissionRow{},
	}
	for _, r := range rows {
		out.Items = append(out.Items, r)
		if r.ProposalSponsorSubmissionType == constants.SubmissionFastTrack {
			out.FastTrack = append(out.FastTrack, r)
		} else {
			out.Regular = append(out.Regular, r)
		}
	}
	return out
}

/* =========================================================
   RECOMMENDED EVENTS
   ========================================================= */

type RecommendedEvent struct {
	eventDTO.EventResponse
	Score int `json:"score"`
}
