package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type CancelInput struct {
	ReservationID uuid.UUID
	ActorID       uuid.UUID
	// SkipTimeCheck refunds regardless of the window. Instructors only.
	SkipTimeCheck bool
}

type CancelResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Refunded    bool                `json:"refunded"`
}

type CancelReservation struct {
	deps usecase.Deps
}

func NewCancelReservation(deps usecase.Deps) *CancelReservation {
	return &CancelReservation{deps: deps}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelInput,
) (*CancelResult, error) {

	repos := uc.deps.Store.Repos()

	r, err := repos.Reservations.GetReservation(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	if in.ActorID != r.StudentID && in.ActorID != r.InstructorID {
		return nil, httperr.NotFoundErr("reservation_not_found")
	}
	if in.SkipTimeCheck && in.ActorID != r.InstructorID {
		return nil, httperr.Forbidden("instructor_only")
	}

	if domain.Status(r.Status) == domain.StatusCancelled {
		return &CancelResult{Reservation: r}, nil
	}
	if err := domain.CanCancel(domain.Status(r.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Refund policy
	// --------------------------------------------------
	var override *int
	settings, err := repos.Settings.GetSettings(ctx, r.InstructorID)
	switch {
	case err == nil:
		override = settings.RefundWindowHours
	case !httperr.IsKind(err, httperr.KindNotFound):
		return nil, err
	}

	now := uc.deps.Clock()
	window := domain.RefundWindow(override, uc.deps.RefundWindow)
	eligible := domain.RefundEligible(r.StartTime, now, window, in.SkipTimeCheck)

	// --------------------------------------------------
	// Cancel + refund, atomically
	// --------------------------------------------------
	var cancelled, refunded bool
	err = uc.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		ok, err := tx.Reservations.MarkCancelled(ctx, r.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cancelled = true

		if !eligible || r.PackageID == nil || !r.CreditDeducted {
			return nil
		}
		if _, err := tx.Credits.RefundCredit(ctx, *r.PackageID); err != nil {
			if httperr.IsBusiness(err, "credit_at_capacity") {
				uc.deps.Log().Warn("refund skipped, package already full",
					"reservation_id", r.ID,
					"package_id", *r.PackageID,
				)
				return nil
			}
			return err
		}
		refunded = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	r, err = repos.Reservations.GetReservation(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		// Lost the race to another cancellation or completion.
		if domain.Status(r.Status) != domain.StatusCancelled {
			return nil, httperr.Conflict("invalid_state")
		}
		return &CancelResult{Reservation: r}, nil
	}

	// --------------------------------------------------
	// Side effects (best effort)
	// --------------------------------------------------
	uc.removeCalendarEvent(ctx, r)

	title := "예약"
	if r.Coaching != nil {
		title = r.Coaching.Title
	}
	uc.deps.Publish(ctx, events.TopicReservationCancelled, events.ReservationEvent{
		ReservationID: r.ID,
		InstructorID:  r.InstructorID,
		StudentID:     r.StudentID,
		CoachingTitle: title,
		Start:         r.StartTime,
		End:           r.EndTime,
		Refunded:      refunded,
	})

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: r.InstructorID,
		ActorID:      &in.ActorID,
		Action:       "reservation_cancelled",
		Entity:       "reservation",
		EntityID:     &r.ID,
		Metadata:     map[string]any{"refunded": refunded},
	})

	return &CancelResult{Reservation: r, Refunded: refunded}, nil
}

func (uc *CancelReservation) removeCalendarEvent(ctx context.Context, r *models.Reservation) {
	if uc.deps.Calendar == nil || r.GoogleEventID == nil {
		return
	}
	octx, cancel := uc.deps.Outbound(ctx)
	defer cancel()

	calendarID := ""
	if r.Coaching != nil && r.Coaching.GoogleCalendarID != nil {
		calendarID = *r.Coaching.GoogleCalendarID
	}
	if err := uc.deps.Calendar.DeleteEvent(octx, r.InstructorID, calendarID, *r.GoogleEventID); err != nil {
		uc.deps.Log().Warn("calendar event removal failed",
			"reservation_id", r.ID,
			"event_id", *r.GoogleEventID,
			"error", err,
		)
	}
}
