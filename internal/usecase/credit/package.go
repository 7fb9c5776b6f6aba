package credit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/credit"
	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

// Ledger groups the package operations. Every balance change goes through
// the repository's conditional updates.
type Ledger struct {
	deps usecase.Deps
}

func NewLedger(deps usecase.Deps) *Ledger {
	return &Ledger{deps: deps}
}

// ======================================================
// CREATE
// ======================================================

type CreatePackageInput struct {
	InstructorID uuid.UUID
	StudentID    uuid.UUID
	CoachingID   *uuid.UUID
	TemplateID   *uuid.UUID

	Name          string
	TotalSessions int
	// RemainingSessions defaults to TotalSessions.
	RemainingSessions *int
	StartDate         time.Time
	ExpiresAt         time.Time
	WorkingHours      *schedule.Weekly
}

func (l *Ledger) Create(ctx context.Context, in CreatePackageInput) (*models.Package, error) {
	repos := l.deps.Store.Repos()

	if _, err := repos.Users.GetUser(ctx, in.StudentID); err != nil {
		return nil, err
	}
	if in.CoachingID != nil {
		c, err := repos.Coachings.GetCoaching(ctx, *in.CoachingID)
		if err != nil {
			return nil, err
		}
		if c.InstructorID != in.InstructorID {
			return nil, httperr.NotFoundErr("coaching_not_found")
		}
	}

	remaining := in.TotalSessions
	if in.RemainingSessions != nil {
		remaining = *in.RemainingSessions
	}
	p := &models.Package{
		InstructorID:      in.InstructorID,
		StudentID:         in.StudentID,
		CoachingID:        in.CoachingID,
		TemplateID:        in.TemplateID,
		Name:              strings.TrimSpace(in.Name),
		TotalSessions:     in.TotalSessions,
		RemainingSessions: remaining,
		StartDate:         in.StartDate,
		ExpiresAt:         in.ExpiresAt,
		WorkingHours:      datatypes.NewJSONType(in.WorkingHours),
	}
	if err := domain.ValidatePackage(p); err != nil {
		return nil, err
	}

	err := l.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		if err := tx.Credits.CreatePackage(ctx, p); err != nil {
			return err
		}
		return tx.Roster.EnsureLink(ctx, &models.StudentInstructor{
			StudentID:    p.StudentID,
			InstructorID: p.InstructorID,
			CoachingID:   p.CoachingID,
		})
	})
	if err != nil {
		return nil, err
	}

	l.audit(in.InstructorID, "package_created", p.ID, map[string]int{"total_sessions": p.TotalSessions})
	return p, nil
}

// ======================================================
// BALANCE
// ======================================================

func (l *Ledger) Deduct(ctx context.Context, instructorID, id uuid.UUID) (*models.Package, error) {
	if _, err := l.owned(ctx, instructorID, id); err != nil {
		return nil, err
	}
	p, err := l.deps.Store.Repos().Credits.DeductCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	l.audit(instructorID, "credit_deducted", id, map[string]int{"remaining_sessions": p.RemainingSessions})
	return p, nil
}

func (l *Ledger) Refund(ctx context.Context, instructorID, id uuid.UUID) (*models.Package, error) {
	if _, err := l.owned(ctx, instructorID, id); err != nil {
		return nil, err
	}
	p, err := l.deps.Store.Repos().Credits.RefundCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	l.audit(instructorID, "credit_refunded", id, map[string]int{"remaining_sessions": p.RemainingSessions})
	return p, nil
}

// ======================================================
// ADMINISTRATIVE EDIT
// ======================================================

type UpdatePackageInput struct {
	Name              *string
	TotalSessions     *int
	RemainingSessions *int
	StartDate         *time.Time
	ExpiresAt         *time.Time
	// WorkingHours replaces the override when SetWorkingHours is true.
	SetWorkingHours bool
	WorkingHours    *schedule.Weekly
}

func (l *Ledger) Update(ctx context.Context, instructorID, id uuid.UUID, in UpdatePackageInput) (*models.Package, error) {
	p, err := l.owned(ctx, instructorID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.TotalSessions != nil {
		p.TotalSessions = *in.TotalSessions
	}
	if in.RemainingSessions != nil {
		p.RemainingSessions = *in.RemainingSessions
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.ExpiresAt != nil {
		p.ExpiresAt = *in.ExpiresAt
	}
	if in.SetWorkingHours {
		p.WorkingHours = datatypes.NewJSONType(in.WorkingHours)
	}
	if err := domain.ValidatePackage(p); err != nil {
		return nil, err
	}

	if err := l.deps.Store.Repos().Credits.UpdatePackage(ctx, p); err != nil {
		return nil, err
	}
	l.audit(instructorID, "package_updated", id, nil)
	return p, nil
}

func (l *Ledger) Delete(ctx context.Context, instructorID, id uuid.UUID) error {
	if _, err := l.owned(ctx, instructorID, id); err != nil {
		return err
	}
	if err := l.deps.Store.Repos().Credits.DeletePackage(ctx, id); err != nil {
		return err
	}
	l.audit(instructorID, "package_deleted", id, nil)
	return nil
}

// ======================================================
// READ
// ======================================================

// Get returns the package when userID is its instructor or student.
func (l *Ledger) Get(ctx context.Context, userID, id uuid.UUID) (*models.Package, error) {
	p, err := l.deps.Store.Repos().Credits.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.InstructorID != userID && p.StudentID != userID {
		return nil, httperr.NotFoundErr("package_not_found")
	}
	return p, nil
}

func (l *Ledger) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]models.Package, error) {
	return l.deps.Store.Repos().Credits.ListPackagesForStudent(ctx, studentID)
}

func (l *Ledger) ListForInstructor(ctx context.Context, instructorID uuid.UUID) ([]models.Package, error) {
	return l.deps.Store.Repos().Credits.ListPackagesForInstructor(ctx, instructorID)
}

func (l *Ledger) owned(ctx context.Context, instructorID, id uuid.UUID) (*models.Package, error) {
	p, err := l.deps.Store.Repos().Credits.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.InstructorID != instructorID {
		return nil, httperr.NotFoundErr("package_not_found")
	}
	return p, nil
}

func (l *Ledger) audit(instructorID uuid.UUID, action string, id uuid.UUID, meta any) {
	l.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       action,
		Entity:       "package",
		EntityID:     &id,
		Metadata:     meta,
	})
}
