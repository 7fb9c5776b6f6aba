package credit

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/yeyakmania/booking-api/internal/domain/credit"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type TemplateInput struct {
	CoachingID    *uuid.UUID
	Name          *string
	TotalSessions *int
	ValidityDays  *int
	Price         *decimal.Decimal
	IsActive      *bool
}

type Templates struct {
	deps usecase.Deps
}

func NewTemplates(deps usecase.Deps) *Templates {
	return &Templates{deps: deps}
}

func (t *Templates) Create(ctx context.Context, instructorID uuid.UUID, in TemplateInput) (*models.PackageTemplate, error) {
	tpl := &models.PackageTemplate{InstructorID: instructorID, IsActive: true}
	if err := t.apply(ctx, tpl, in); err != nil {
		return nil, err
	}
	if err := t.deps.Store.Repos().Credits.CreateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (t *Templates) Update(ctx context.Context, instructorID, id uuid.UUID, in TemplateInput) (*models.PackageTemplate, error) {
	tpl, err := t.owned(ctx, instructorID, id)
	if err != nil {
		return nil, err
	}
	if err := t.apply(ctx, tpl, in); err != nil {
		return nil, err
	}
	if err := t.deps.Store.Repos().Credits.UpdateTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (t *Templates) Delete(ctx context.Context, instructorID, id uuid.UUID) error {
	if _, err := t.owned(ctx, instructorID, id); err != nil {
		return err
	}
	return t.deps.Store.Repos().Credits.DeleteTemplate(ctx, id)
}

func (t *Templates) List(ctx context.Context, instructorID uuid.UUID) ([]models.PackageTemplate, error) {
	return t.deps.Store.Repos().Credits.ListTemplates(ctx, instructorID)
}

func (t *Templates) apply(ctx context.Context, tpl *models.PackageTemplate, in TemplateInput) error {
	if in.CoachingID != nil {
		c, err := t.deps.Store.Repos().Coachings.GetCoaching(ctx, *in.CoachingID)
		if err != nil {
			return err
		}
		if c.InstructorID != tpl.InstructorID {
			return httperr.NotFoundErr("coaching_not_found")
		}
		tpl.CoachingID = in.CoachingID
	}
	if in.Name != nil {
		tpl.Name = strings.TrimSpace(*in.Name)
	}
	if in.TotalSessions != nil {
		tpl.TotalSessions = *in.TotalSessions
	}
	if in.ValidityDays != nil {
		tpl.ValidityDays = *in.ValidityDays
	}
	if in.Price != nil {
		tpl.Price = *in.Price
	}
	if in.IsActive != nil {
		tpl.IsActive = *in.IsActive
	}
	return domain.ValidateTemplate(tpl)
}

func (t *Templates) owned(ctx context.Context, instructorID, id uuid.UUID) (*models.PackageTemplate, error) {
	tpl, err := t.deps.Store.Repos().Credits.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl.InstructorID != instructorID {
		return nil, httperr.NotFoundErr("template_not_found")
	}
	return tpl, nil
}
