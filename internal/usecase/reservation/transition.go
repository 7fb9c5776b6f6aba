package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

// loadForInstructor hides reservations of other instructors behind NotFound.
func loadForInstructor(ctx context.Context, deps usecase.Deps, id, instructorID uuid.UUID) (*models.Reservation, error) {
	r, err := deps.Store.Repos().Reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.InstructorID != instructorID {
		return nil, httperr.NotFoundErr("reservation_not_found")
	}
	return r, nil
}

// swap turns a lost conditional update into invalid_state. The row was
// changed (typically cancelled) between the read and the write.
func swap(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmReservation struct {
	deps usecase.Deps
}

func NewConfirmReservation(deps usecase.Deps) *ConfirmReservation {
	return &ConfirmReservation{deps: deps}
}

func (uc *ConfirmReservation) Execute(ctx context.Context, instructorID, id uuid.UUID) (*models.Reservation, error) {
	r, err := loadForInstructor(ctx, uc.deps, id, instructorID)
	if err != nil {
		return nil, err
	}
	from := domain.Status(r.Status)
	if err := domain.Confirm(r); err != nil {
		return nil, err
	}
	if err := swap(uc.deps.Store.Repos().Reservations.UpdateStatus(ctx, r, from)); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       "reservation_confirmed",
		Entity:       "reservation",
		EntityID:     &r.ID,
	})
	return r, nil
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteReservation struct {
	deps usecase.Deps
}

func NewCompleteReservation(deps usecase.Deps) *CompleteReservation {
	return &CompleteReservation{deps: deps}
}

func (uc *CompleteReservation) Execute(ctx context.Context, instructorID, id uuid.UUID) (*models.Reservation, error) {
	r, err := loadForInstructor(ctx, uc.deps, id, instructorID)
	if err != nil {
		return nil, err
	}
	from := domain.Status(r.Status)
	if err := domain.Complete(r, uc.deps.Clock()); err != nil {
		return nil, err
	}
	if err := swap(uc.deps.Store.Repos().Reservations.UpdateStatus(ctx, r, from)); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       "reservation_completed",
		Entity:       "reservation",
		EntityID:     &r.ID,
	})
	return r, nil
}

// ======================================================
// ATTENDANCE
// ======================================================

type MarkAttendance struct {
	deps usecase.Deps
}

func NewMarkAttendance(deps usecase.Deps) *MarkAttendance {
	return &MarkAttendance{deps: deps}
}

func (uc *MarkAttendance) Execute(ctx context.Context, instructorID, id uuid.UUID, attendance string) (*models.Reservation, error) {
	if !domain.ValidAttendance(attendance) {
		return nil, httperr.Invalid("invalid_attendance")
	}
	r, err := loadForInstructor(ctx, uc.deps, id, instructorID)
	if err != nil {
		return nil, err
	}
	if err := domain.MarkAttendance(r, domain.Attendance(attendance)); err != nil {
		return nil, err
	}
	if err := swap(uc.deps.Store.Repos().Reservations.SetAttendance(ctx, r.ID, domain.Attendance(attendance))); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: instructorID,
		ActorID:      &instructorID,
		Action:       "attendance_marked",
		Entity:       "reservation",
		EntityID:     &r.ID,
		Metadata:     map[string]string{"attendance": attendance},
	})
	return r, nil
}
