package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
)

// Package is a purchased credit bundle of one student with one instructor.
type Package struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"instructor_id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	CoachingID   *uuid.UUID `gorm:"type:uuid" json:"coaching_id"`
	TemplateID   *uuid.UUID `gorm:"type:uuid" json:"template_id"`

	Name              string    `gorm:"size:100" json:"name"`
	TotalSessions     int       `gorm:"not null" json:"total_sessions"`
	RemainingSessions int       `gorm:"not null" json:"remaining_sessions"`
	StartDate         time.Time `gorm:"not null" json:"start_date"`
	ExpiresAt         time.Time `gorm:"not null" json:"expires_at"`

	WorkingHours datatypes.JSONType[*schedule.Weekly] `gorm:"type:jsonb;not null" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the package is unusable at t.
func (p *Package) Expired(t time.Time) bool {
	return !t.Before(p.ExpiresAt)
}

type PackageTemplate struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"instructor_id"`
	CoachingID   *uuid.UUID `gorm:"type:uuid" json:"coaching_id"`

	Name          string          `gorm:"size:100;not null" json:"name"`
	TotalSessions int             `gorm:"not null" json:"total_sessions"`
	ValidityDays  int             `gorm:"not null" json:"validity_days"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
