package coaching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/coaching"
	"github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

const maxSlugSuffix = 100

type Input struct {
	Title       *string
	Slug        *string
	Description *string
	Duration    *int
	Price       *decimal.Decimal
	Type        *string
	IsActive    *bool

	GoogleCalendarID *string
	// WorkingHours replaces the override when SetWorkingHours is true;
	// nil clears it.
	SetWorkingHours bool
	WorkingHours    *schedule.Weekly
}

type Manager struct {
	deps usecase.Deps
}

func NewManager(deps usecase.Deps) *Manager {
	return &Manager{deps: deps}
}

func (m *Manager) Create(ctx context.Context, instructorID uuid.UUID, in Input) (*models.Coaching, error) {
	c := &models.Coaching{
		InstructorID: instructorID,
		Type:         models.CoachingPrivate,
		IsActive:     true,
		WorkingHours: datatypes.NewJSONType[*schedule.Weekly](nil),
	}
	apply(c, in)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}

	requested := c.Title
	if in.Slug != nil {
		requested = *in.Slug
	}
	slug, err := m.uniqueSlug(ctx, instructorID, requested, uuid.Nil, in.Slug != nil)
	if err != nil {
		return nil, err
	}
	c.Slug = slug

	if err := m.deps.Store.Repos().Coachings.CreateCoaching(ctx, c); err != nil {
		return nil, err
	}
	m.audit(instructorID, "coaching_created", c.ID)
	return c, nil
}

func (m *Manager) Update(ctx context.Context, instructorID, id uuid.UUID, in Input) (*models.Coaching, error) {
	c, err := m.owned(ctx, instructorID, id)
	if err != nil {
		return nil, err
	}
	apply(c, in)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}

	if in.Slug != nil {
		slug, err := m.uniqueSlug(ctx, instructorID, *in.Slug, c.ID, true)
		if err != nil {
			return nil, err
		}
		c.Slug = slug
	}

	if err := m.deps.Store.Repos().Coachings.UpdateCoaching(ctx, c); err != nil {
		return nil, err
	}
	m.audit(instructorID, "coaching_updated", c.ID)
	return c, nil
}

func (m *Manager) Delete(ctx context.Context, instructorID, id uuid.UUID) error {
	if _, err := m.owned(ctx, instructorID, id); err != nil {
		return err
	}
	if err := m.deps.Store.Repos().Coachings.DeleteCoaching(ctx, id); err != nil {
		return err
	}
	m.audit(instructorID, "coaching_deleted", id)
	return nil
}

func (m *Manager) List(ctx context.Context, instructorID uuid.UUID, activeOnly bool) ([]models.Coaching, error) {
	return m.deps.Store.Repos().Coachings.ListCoachings(ctx, instructorID, activeOnly)
}

// PublicBySlug backs the public booking page; inactive coachings are hidden.
func (m *Manager) PublicBySlug(ctx context.Context, instructorID uuid.UUID, slug string) (*models.Coaching, error) {
	c, err := m.deps.Store.Repos().Coachings.GetCoachingBySlug(ctx, instructorID, slug)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, httperr.NotFoundErr("coaching_not_found")
	}
	return c, nil
}

// uniqueSlug derives a slug from value. Generated slugs get a numeric suffix
// on collision; an explicitly requested one must be free.
func (m *Manager) uniqueSlug(ctx context.Context, instructorID uuid.UUID, value string, self uuid.UUID, explicit bool) (string, error) {
	repo := m.deps.Store.Repos().Coachings

	base := domain.Slugify(value)
	if base == "" {
		code, err := invitation.GenerateCode()
		if err != nil {
			return "", err
		}
		base = strings.ToLower(code)
	}

	for i := 1; i <= maxSlugSuffix; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := repo.SlugExists(ctx, instructorID, candidate, self)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if explicit {
			return "", httperr.Conflict("slug_taken")
		}
	}
	return "", httperr.Conflict("slug_taken")
}

func (m *Manager) owned(ctx context.Context, instructorID, id uuid.UUID) (*models.Coaching, error) {
	c, err := m.deps.Store.Repos().Coachings.GetCoaching(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.InstructorID != instructorID {
		return nil, httperr.NotFoundErr("coaching_not_found")
	}
	return c, nil
}

func (m *Manager) audit(instructorID uuid.UUID, action string, id uuid.UUID) {
	m.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       action,
		Entity:       "coaching",
		EntityID:     &id,
	})
}

func apply(c *models.Coaching, in Input) {
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.GoogleCalendarID != nil {
		if id := strings.TrimSpace(*in.GoogleCalendarID); id != "" {
			c.GoogleCalendarID = &id
		} else {
			c.GoogleCalendarID = nil
		}
	}
	if in.SetWorkingHours {
		c.WorkingHours = datatypes.NewJSONType(in.WorkingHours)
	}
}
