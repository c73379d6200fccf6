package model

import (
	"time"

	"github.com/google/uuid"
)

// ProposalModel: tepat satu per event (uq_proposals_event)
type ProposalModel struct {
	ProposalID             uuid.UUID `gorm:"column:proposal_id;type:uuid;default:gen_random_uuid();primaryKey" json:"proposal_id"`
	ProposalEventID        uuid.UUID `gorm:"column:proposal_event_id;type:uuid;not null;uniqueIndex:uq_proposals_event" json:"proposal_event_id"`
	ProposalSubmissionType string    `gorm:"column:proposal_submission_type;type:varchar(20);not null;default:'REGULAR'" json:"proposal_submission_type"`
	ProposalPDFURL         *string   `gorm:"column:proposal_pdf_url;type:text" json:"proposal_pdf_url,omitempty"`
	ProposalCreatedAt      time.Time `gorm:"column:proposal_created_at;type:timestamptz;autoCreateTime" json:"proposal_created_at"`
	ProposalUpdatedAt      time.Time `gorm:"column:proposal_updated_at;type:timestamptz;autoUpdateTime" json:"proposal_updated_at"`
}

func (ProposalModel) TableName() string {
	return "proposals"
}
