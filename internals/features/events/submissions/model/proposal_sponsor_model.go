package model

import (
	"time"

	"github.com/google/uuid"
)

// ProposalSponsorModel: satu pengajuan proposal ke satu sponsor.
// Unik per (proposal, sponsor); status hanya berubah sekali saat review.
type ProposalSponsorModel struct {
	ProposalSponsorID             uuid.UUID  `gorm:"column:proposal_sponsor_id;type:uuid;default:gen_random_uuid();primaryKey" json:"proposal_sponsor_id"`
	ProposalSponsorProposalID     uuid.UUID  `gorm:"column:proposal_sponsor_proposal_id;type:uuid;not null;uniqueIndex:uq_proposal_sponsors_pair,priority:1" json:"proposal_sponsor_proposal_id"`
	ProposalSponsorEventID        uuid.UUID  `gorm:"column:proposal_sponsor_event_id;type:uuid;not null;index:idx_proposal_sponsors_event" json:"proposal_sponsor_event_id"`
	ProposalSponsorSponsorID      uuid.UUID  `gorm:"column:proposal_sponsor_sponsor_id;type:uuid;not null;uniqueIndex:uq_proposal_sponsors_pair,priority:2;index:idx_proposal_sponsors_sponsor" json:"proposal_sponsor_sponsor_id"`
	ProposalSponsorSubmissionType string     `gorm:"column:proposal_sponsor_submission_type;type:varchar(20);not null" json:"proposal_sponsor_submission_type"`
	ProposalSponsorStatus         string     `gorm:"column:proposal_sponsor_status;type:varchar(20);not null;default:'PENDING'" json:"proposal_sponsor_status"`
	ProposalSponsorFeedback       *string    `gorm:"column:proposal_sponsor_feedback;type:text" json:"proposal_sponsor_feedback"`
	ProposalSponsorCreatedAt      time.Time  `gorm:"column:proposal_sponsor_created_at;type:timestamptz;autoCreateTime" json:"proposal_sponsor_created_at"`
	ProposalSponsorUpdatedAt      time.Time  `gorm:"column:proposal_sponsor_updated_at;type:timestamptz;autoUpdateTime" json:"proposal_sponsor_updated_at"`
	ProposalSponsorReviewedAt     *time.Time `gorm:"column:proposal_sponsor_reviewed_at;type:timestamptz" json:"proposal_sponsor_reviewed_at,omitempty"`
}

func (ProposalSponsorModel) TableName() string {
	return "proposal_sponsors"
}
