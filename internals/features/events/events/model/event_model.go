package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel: event milik satu EO (event_eo_id = eo_profiles.eo_profile_id)
type EventModel struct {
	EventID   uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventEOID uuid.UUID `gorm:"column:event_eo_id;type:uuid;not null;index:idx_events_eo_id" json:"event_eo_id"`

	EventName         string  `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	EventLocation     *string `gorm:"column:event_location;type:varchar(255)" json:"event_location,omitempty"`
	EventTarget       *string `gorm:"column:event_target;type:varchar(255)" json:"event_target,omitempty"`
	EventRequirements *string `gorm:"column:event_requirements;type:text" json:"event_requirements,omitempty"`
	EventDescription  *string `gorm:"column:event_description;type:text" json:"event_description,omitempty"`

	// File (OSS / Cloudinary)
	EventImageURL    *string `gorm:"column:event_image_url;type:text" json:"event_image_url,omitempty"`
	EventProposalURL *string `gorm:"column:event_proposal_url;type:text" json:"event_proposal_url,omitempty"`

	EventStartTime time.Time `gorm:"column:event_start_time;type:timestamptz;not null;index:idx_events_start_time" json:"event_start_time"`
	EventEndTime   time.Time `gorm:"column:event_end_time;type:timestamptz;not null" json:"event_end_time"`

	// Master refs
	EventCategoryID    *int `gorm:"column:event_category_id" json:"event_category_id,omitempty"`
	EventSponsorTypeID *int `gorm:"column:event_sponsor_type_id" json:"event_sponsor_type_id,omitempty"`
	EventSizeID        *int `gorm:"column:event_size_id" json:"event_size_id,omitempty"`
	EventModeID        *int `gorm:"column:event_mode_id" json:"event_mode_id,omitempty"`

	// true setelah pembayaran fast-track PAID
	EventIsFasttrack bool `gorm:"column:event_is_fasttrack;not null;default:false" json:"event_is_fasttrack"`

	EventCreatedAt time.Time `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

// FileURLs: semua file yang menempel di event (untuk trash saat delete)
func (e *EventModel) FileURLs() []string {
	var out []string
	if e.EventImageURL != nil {
		out = append(out, *e.EventImageURL)
	}
	if e.EventProposalURL != nil {
		out = append(out, *e.EventProposalURL)
	}
	return out
}
