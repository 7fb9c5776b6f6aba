package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

type Invitation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Email          string    `gorm:"size:255;not null;index:idx_invitation_lookup,priority:2" json:"email"`
	InvitationCode string    `gorm:"size:6;uniqueIndex;not null" json:"invitation_code"`
	CoachingID     uuid.UUID `gorm:"type:uuid;not null;index:idx_invitation_lookup,priority:1" json:"coaching_id"`
	InstructorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`

	// PackageTemplateIDs are provisioned as packages on acceptance.
	PackageTemplateIDs pq.StringArray `gorm:"type:text[]" json:"package_template_ids"`

	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	AcceptedBy *uuid.UUID `gorm:"type:uuid" json:"accepted_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentInstructor links a student to an instructor, optionally scoped to a
// coaching. Uniqueness is enforced by an expression index created in db.NewDB.
type StudentInstructor struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"instructor_id"`
	CoachingID   *uuid.UUID `gorm:"type:uuid" json:"coaching_id"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
