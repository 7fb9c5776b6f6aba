package account

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/timezone"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

// MaxRefundWindowHours bounds the per-instructor cancellation window (30 days).
const MaxRefundWindowHours = 720

type SettingsInput struct {
	WorkingHours *schedule.Weekly
	Timezone     *string

	RefundWindowHours      *int
	ResetRefundWindowHours bool

	NotifyEmail   *bool
	NotifySMS     *bool
	NotionEnabled *bool
}

type Settings struct {
	deps usecase.Deps
}

func NewSettings(deps usecase.Deps) *Settings {
	return &Settings{deps: deps}
}

// Defaults is what an instructor who never saved settings works with.
func Defaults(instructorID uuid.UUID) *models.InstructorSettings {
	return &models.InstructorSettings{
		InstructorID: instructorID,
		WorkingHours: datatypes.NewJSONType(schedule.Default()),
		Timezone:     timezone.DefaultTimezone,
		NotifyEmail:  true,
	}
}

func (s *Settings) Get(ctx context.Context, instructorID uuid.UUID) (*models.InstructorSettings, error) {
	if err := s.requireInstructor(ctx, instructorID); err != nil {
		return nil, err
	}
	return s.load(ctx, instructorID)
}

func (s *Settings) Save(ctx context.Context, instructorID uuid.UUID, in SettingsInput) (*models.InstructorSettings, error) {
	if err := s.requireInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	st, err := s.load(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	if in.WorkingHours != nil {
		if err := in.WorkingHours.Validate(); err != nil {
			return nil, httperr.Invalid("invalid_schedule")
		}
		st.WorkingHours = datatypes.NewJSONType(*in.WorkingHours)
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.Invalid("invalid_timezone")
		}
		st.Timezone = *in.Timezone
	}
	switch {
	case in.ResetRefundWindowHours:
		st.RefundWindowHours = nil
	case in.RefundWindowHours != nil:
		h := *in.RefundWindowHours
		if h < 0 || h > MaxRefundWindowHours {
			return nil, httperr.Invalid("invalid_refund_window")
		}
		st.RefundWindowHours = &h
	}
	if in.NotifyEmail != nil {
		st.NotifyEmail = *in.NotifyEmail
	}
	if in.NotifySMS != nil {
		st.NotifySMS = *in.NotifySMS
	}
	if in.NotionEnabled != nil {
		st.NotionEnabled = *in.NotionEnabled
	}

	if err := s.deps.Store.Repos().Settings.SaveSettings(ctx, st); err != nil {
		return nil, err
	}

	s.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       "settings_updated",
		Entity:       "instructor_settings",
		EntityID:     &instructorID,
	})
	return st, nil
}

func (s *Settings) load(ctx context.Context, instructorID uuid.UUID) (*models.InstructorSettings, error) {
	st, err := s.deps.Store.Repos().Settings.GetSettings(ctx, instructorID)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return Defaults(instructorID), nil
	}
	return st, err
}

func (s *Settings) requireInstructor(ctx context.Context, userID uuid.UUID) error {
	roles, err := s.deps.Store.Repos().Roles.ListRoles(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r == models.RoleInstructor {
			return nil
		}
	}
	return httperr.Forbidden("instructor_only")
}
