package credit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

type Repository interface {
	// -------- Package --------
	CreatePackage(ctx context.Context, p *models.Package) error
	GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	UpdatePackage(ctx context.Context, p *models.Package) error
	DeletePackage(ctx context.Context, id uuid.UUID) error
	ListPackagesForStudent(ctx context.Context, studentID uuid.UUID) ([]models.Package, error)
	ListPackagesForInstructor(ctx context.Context, instructorID uuid.UUID) ([]models.Package, error)

	// DeductCredit decrements remaining_sessions by one in a single
	// conditional update. It fails with InsufficientCredit at zero.
	DeductCredit(ctx context.Context, id uuid.UUID) (*models.Package, error)
	// RefundCredit increments remaining_sessions by one, never above total.
	RefundCredit(ctx context.Context, id uuid.UUID) (*models.Package, error)

	// -------- Template --------
	CreateTemplate(ctx context.Context, t *models.PackageTemplate) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.PackageTemplate, error)
	UpdateTemplate(ctx context.Context, t *models.PackageTemplate) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	ListTemplates(ctx context.Context, instructorID uuid.UUID) ([]models.PackageTemplate, error)
}

// ValidatePackage checks session bounds and the validity window.
func ValidatePackage(p *models.Package) error {
	if p.TotalSessions <= 0 {
		return httperr.Invalid("invalid_total_sessions")
	}
	if p.RemainingSessions < 0 || p.RemainingSessions > p.TotalSessions {
		return httperr.Invalid("invalid_remaining_sessions")
	}
	if !p.ExpiresAt.After(p.StartDate) {
		return httperr.Invalid("invalid_package_period")
	}
	if wh := p.WorkingHours.Data(); wh != nil {
		if err := wh.Validate(); err != nil {
			return httperr.Invalid("invalid_schedule")
		}
	}
	return nil
}

func ValidateTemplate(t *models.PackageTemplate) error {
	if strings.TrimSpace(t.Name) == "" {
		return httperr.Invalid("missing_name")
	}
	if t.TotalSessions <= 0 {
		return httperr.Invalid("invalid_total_sessions")
	}
	if t.ValidityDays <= 0 {
		return httperr.Invalid("invalid_validity_days")
	}
	if t.Price.IsNegative() {
		return httperr.Invalid("invalid_price")
	}
	return nil
}

// FromTemplate builds a full package for student starting at now.
func FromTemplate(t *models.PackageTemplate, studentID uuid.UUID, now time.Time) *models.Package {
	id := t.ID
	return &models.Package{
		InstructorID:      t.InstructorID,
		StudentID:         studentID,
		CoachingID:        t.CoachingID,
		TemplateID:        &id,
		Name:              t.Name,
		TotalSessions:     t.TotalSessions,
		RemainingSessions: t.TotalSessions,
		StartDate:         now,
		ExpiresAt:         now.AddDate(0, 0, t.ValidityDays),
	}
}
