package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sponsorku_backend/internals/constants"
)

/* ===================== Model ===================== */

// PaymentModel: ledger pembayaran fast-track.
// payment_event_id di-NULL-kan saat event dihapus, row ledger tetap ada.
type PaymentModel struct {
	PaymentID      uuid.UUID  `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentEventID *uuid.UUID `gorm:"column:payment_event_id;type:uuid;index:idx_payments_event" json:"payment_event_id,omitempty"`
	PaymentEOID    uuid.UUID  `gorm:"column:payment_eo_id;type:uuid;not null;index:idx_payments_eo" json:"payment_eo_id"`

	// order_id yang dikirim ke Midtrans (PAY-<uuid>)
	PaymentOrderID     string `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex:uq_payments_order_id" json:"payment_order_id"`
	PaymentGrossAmount int64  `gorm:"column:payment_gross_amount;not null;check:payment_gross_amount >= 0" json:"payment_gross_amount"`
	PaymentStatus      string `gorm:"column:payment_status;type:varchar(16);not null;default:'PENDING';index:idx_payments_status" json:"payment_status"`

	// Snap
	PaymentSnapToken   *string `gorm:"column:payment_snap_token" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string `gorm:"column:payment_redirect_url" json:"payment_redirect_url,omitempty"`

	// Callback
	PaymentType            *string           `gorm:"column:payment_type;type:varchar(64)" json:"payment_type,omitempty"`
	PaymentGatewayResponse datatypes.JSONMap `gorm:"column:payment_gateway_response;type:jsonb" json:"payment_gateway_response,omitempty"`
	PaymentPaidAt          *time.Time        `gorm:"column:payment_paid_at;type:timestamptz" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;type:timestamptz;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;type:timestamptz;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *PaymentModel) IsPaid() bool {
	return p.PaymentStatus == constants.PaymentPaid
}
