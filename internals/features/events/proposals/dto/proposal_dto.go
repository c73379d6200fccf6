package dto

import (
	"strings"

	"sponsorku_backend/internals/constants"
	"sponsorku_backend/internals/features/events/proposals/model"
	helper "sponsorku_backend/internals/helpers"
)

// ProposalForm: field multipart POST/PUT /api/events/:id/proposal
type ProposalForm struct {
	SubmissionType string `json:"submission_type" form:"submission_type"`
}

// ResolveType: kosong → fallback, selain REGULAR/FAST_TRACK → 400
func (f *ProposalForm) ResolveType(fallback string) (string, error) {
	if strings.TrimSpace(f.SubmissionType) == "" {
		return fallback, nil
	}
	t := constants.NormalizeSubmissionType(f.SubmissionType)
	if t == "" {
		return "", helper.ErrValidation("submission_type harus REGULAR atau FAST_TRACK")
	}
	return t, nil
}

type ProposalResponse struct {
	model.ProposalModel
	EventName        string `json:"event_name"`
	EventIsFasttrack bool   `json:"event_is_fasttrack"`
}
