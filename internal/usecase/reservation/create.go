package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	domain "github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ActorID uuid.UUID

	StudentID    uuid.UUID
	InstructorID uuid.UUID
	CoachingID   *uuid.UUID
	PackageID    *uuid.UUID

	// DeductCredit consumes one package credit together with the insert.
	// Only the instructor may book against a package without deducting;
	// a student's own booking always consumes a credit.
	DeductCredit bool

	Start  time.Time
	End    time.Time
	Notes  string
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	deps usecase.Deps
}

func NewCreateReservation(deps usecase.Deps) *CreateReservation {
	return &CreateReservation{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if in.StudentID == uuid.Nil || in.InstructorID == uuid.Nil {
		return nil, httperr.Invalid("invalid_request")
	}
	if !in.End.After(in.Start) {
		return nil, httperr.Invalid("invalid_time_range")
	}
	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.ActorID != in.StudentID && in.ActorID != in.InstructorID {
		return nil, httperr.Forbidden("forbidden")
	}
	if in.ActorID != in.InstructorID {
		in.DeductCredit = true
	}

	repos := uc.deps.Store.Repos()

	if _, err := repos.Users.GetUser(ctx, in.InstructorID); err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.NotFoundErr("instructor_not_found")
		}
		return nil, err
	}
	student, err := repos.Users.GetUser(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Coaching
	// --------------------------------------------------
	var coaching *models.Coaching
	if in.CoachingID != nil {
		coaching, err = repos.Coachings.GetCoaching(ctx, *in.CoachingID)
		if err != nil {
			return nil, err
		}
		if coaching.InstructorID != in.InstructorID {
			return nil, httperr.NotFoundErr("coaching_not_found")
		}
		if !coaching.IsActive {
			return nil, httperr.Invalid("coaching_inactive")
		}
	}

	// --------------------------------------------------
	// 3. Package
	// --------------------------------------------------
	if in.PackageID != nil {
		pkg, err := repos.Credits.GetPackage(ctx, *in.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg.StudentID != in.StudentID || pkg.InstructorID != in.InstructorID {
			return nil, httperr.Invalid("package_mismatch")
		}
		if pkg.CoachingID != nil && in.CoachingID != nil && *pkg.CoachingID != *in.CoachingID {
			return nil, httperr.Invalid("package_mismatch")
		}
		if pkg.Expired(in.Start) {
			return nil, httperr.Invalid("package_expired")
		}
	}

	// --------------------------------------------------
	// 4. Insert + credit, atomically
	// --------------------------------------------------
	r := &models.Reservation{
		StudentID:      in.StudentID,
		InstructorID:   in.InstructorID,
		CoachingID:     in.CoachingID,
		PackageID:      in.PackageID,
		StartTime:      in.Start,
		EndTime:        in.End,
		Status:         string(status),
		Notes:          in.Notes,
		CreditDeducted: in.PackageID != nil && in.DeductCredit,
	}

	err = uc.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		if err := tx.Reservations.CreateReservation(ctx, r); err != nil {
			return err
		}
		if r.CreditDeducted {
			if _, err := tx.Credits.DeductCredit(ctx, *r.PackageID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects (best effort)
	// --------------------------------------------------
	uc.syncCalendar(ctx, r, coaching, student)

	title := "예약"
	if coaching != nil {
		title = coaching.Title
	}
	uc.deps.Publish(ctx, events.TopicReservationCreated, events.ReservationEvent{
		ReservationID: r.ID,
		InstructorID:  r.InstructorID,
		StudentID:     r.StudentID,
		CoachingTitle: title,
		Start:         r.StartTime,
		End:           r.EndTime,
		MeetLink:      deref(r.MeetLink),
	})

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: r.InstructorID,
		ActorID:      &in.ActorID,
		Action:       "reservation_created",
		Entity:       "reservation",
		EntityID:     &r.ID,
		Metadata: map[string]any{
			"package_id":      r.PackageID,
			"credit_deducted": r.CreditDeducted,
		},
	})

	return r, nil
}

func (uc *CreateReservation) syncCalendar(ctx context.Context, r *models.Reservation, coaching *models.Coaching, student *models.User) {
	if uc.deps.Calendar == nil {
		return
	}
	log := uc.deps.Log().With("reservation_id", r.ID, "instructor_id", r.InstructorID)

	octx, cancel := uc.deps.Outbound(ctx)
	defer cancel()

	connected, err := uc.deps.Calendar.Connected(octx, r.InstructorID)
	if err != nil {
		log.Warn("calendar connection lookup failed", "error", err)
		return
	}
	if !connected {
		return
	}

	in := calendar.EventInput{
		InstructorID: r.InstructorID,
		Summary:      "예약 - " + student.Name,
		Description:  r.Notes,
		Start:        r.StartTime,
		End:          r.EndTime,
		Attendees:    []string{student.Email},
		WithMeet:     true,
	}
	if coaching != nil {
		in.Summary = coaching.Title + " - " + student.Name
		if coaching.GoogleCalendarID != nil {
			in.CalendarID = *coaching.GoogleCalendarID
		}
	}

	ev, err := uc.deps.Calendar.AddEvent(octx, in)
	if err != nil {
		log.Warn("calendar event creation failed", "error", err)
		return
	}

	if err := uc.deps.Store.Repos().Reservations.SetCalendarEvent(octx, r.ID, ev.ID, ev.MeetLink); err != nil {
		log.Warn("calendar event not recorded", "event_id", ev.ID, "error", err)
		return
	}
	r.GoogleEventID = &ev.ID
	if ev.MeetLink != "" {
		r.MeetLink = &ev.MeetLink
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
