package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
)

const (
	CoachingPrivate = "private"
	CoachingGroup   = "group"
)

type Coaching struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coaching_slug,priority:1" json:"instructor_id"`

	Title       string          `gorm:"size:100;not null" json:"title"`
	Slug        string          `gorm:"size:120;not null;uniqueIndex:idx_coaching_slug,priority:2" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Duration    int             `gorm:"not null" json:"duration"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Type        string          `gorm:"size:20;not null;default:'private'" json:"type"`

	// WorkingHours overrides the instructor's default schedule when non-nil.
	WorkingHours     datatypes.JSONType[*schedule.Weekly] `gorm:"type:jsonb;not null" json:"working_hours"`
	GoogleCalendarID *string                              `gorm:"size:255" json:"google_calendar_id"`
	IsActive         bool                                 `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
