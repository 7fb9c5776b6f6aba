package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
)

type InstructorSettings struct {
	InstructorID uuid.UUID `gorm:"type:uuid;primaryKey" json:"instructor_id"`

	WorkingHours datatypes.JSONType[schedule.Weekly] `gorm:"type:jsonb;not null" json:"working_hours"`
	Timezone     string                              `gorm:"size:64;default:'Asia/Seoul'" json:"timezone"`

	// RefundWindowHours overrides the service-wide cancellation window.
	RefundWindowHours *int `json:"refund_window_hours"`

	NotifyEmail   bool `gorm:"default:true" json:"notify_email"`
	NotifySMS     bool `gorm:"default:false" json:"notify_sms"`
	NotionEnabled bool `gorm:"default:false" json:"notion_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoogleConnection struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	GoogleEmail string `gorm:"size:255" json:"google_email"`
	// EncryptedRefreshToken is sealed with secretbox; nonce prepended.
	EncryptedRefreshToken []byte    `gorm:"type:bytea" json:"-"`
	CalendarID            string    `gorm:"size:255;default:'primary'" json:"calendar_id"`
	CalendarScope         bool      `json:"calendar_scope"`
	ConnectedAt           time.Time `json:"connected_at"`

	UpdatedAt time.Time `json:"updated_at"`
}
