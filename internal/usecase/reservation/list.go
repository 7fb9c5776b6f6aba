package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/timezone"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

const (
	AsInstructor = "instructor"
	AsStudent    = "student"

	maxListSpan = 93 * 24 * time.Hour
)

type ListInput struct {
	UserID uuid.UUID
	As     string
	From   time.Time
	To     time.Time
}

type ListReservations struct {
	deps usecase.Deps
}

func NewListReservations(deps usecase.Deps) *ListReservations {
	return &ListReservations{deps: deps}
}

func (uc *ListReservations) Execute(ctx context.Context, in ListInput) ([]models.Reservation, error) {
	if !in.To.After(in.From) {
		return nil, httperr.Invalid("invalid_time_range")
	}
	if in.To.Sub(in.From) > maxListSpan {
		return nil, httperr.Invalid("range_too_long")
	}

	repo := uc.deps.Store.Repos().Reservations
	switch in.As {
	case AsInstructor:
		return repo.ListForInstructor(ctx, in.UserID, in.From, in.To)
	case AsStudent, "":
		return repo.ListForStudent(ctx, in.UserID, in.From, in.To)
	default:
		return nil, httperr.Invalid("invalid_role")
	}
}

// DayRange returns [00:00, next 00:00) of day in loc.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	start := timezone.StartOfDay(day, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the first instant of month and of the following one.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time, error) {
	if year < 2000 || year > 2100 || month < time.January || month > time.December {
		return time.Time{}, time.Time{}, httperr.Invalid("invalid_date")
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}
