package models

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index:idx_reservation_instructor_start,priority:1" json:"instructor_id"`
	CoachingID   *uuid.UUID `gorm:"type:uuid" json:"coaching_id"`
	PackageID    *uuid.UUID `gorm:"type:uuid;index" json:"package_id"`

	Student  *User     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"student,omitempty"`
	Coaching *Coaching `gorm:"foreignKey:CoachingID;constraint:OnDelete:SET NULL;" json:"coaching,omitempty"`

	StartTime time.Time `gorm:"type:timestamptz;not null;index:idx_reservation_instructor_start,priority:2" json:"start_time"`
	EndTime   time.Time `gorm:"type:timestamptz;not null" json:"end_time"`

	Status           string  `gorm:"size:20;not null;default:'confirmed'" json:"status"`
	AttendanceStatus *string `gorm:"size:20" json:"attendance_status"`

	// CreditDeducted is true when booking consumed one credit of PackageID.
	CreditDeducted bool `gorm:"not null;default:false" json:"credit_deducted"`

	MeetLink      *string `gorm:"size:255" json:"meet_link"`
	GoogleEventID *string `gorm:"size:255" json:"google_event_id"`
	Notes         string  `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
