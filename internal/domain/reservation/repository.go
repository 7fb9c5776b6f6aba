package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/models"
)

type Repository interface {
	// -------- Create / read --------
	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)

	// -------- State change --------
	// Each write below is conditional on the stored status and reports
	// false when the row moved on since it was read.

	// UpdateStatus writes r.Status and r.CompletedAt while the stored
	// status still equals from.
	UpdateStatus(ctx context.Context, r *models.Reservation, from Status) (bool, error)
	// SetAttendance writes only attendance_status, on a confirmed or
	// completed reservation.
	SetAttendance(ctx context.Context, id uuid.UUID, a Attendance) (bool, error)

	// MarkCancelled moves a pending or confirmed reservation to cancelled.
	// It reports false when the row was no longer cancellable.
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID, meetLink string) error

	// -------- Listing --------
	ListBlockingForInstructor(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]models.Reservation, error)
	ListForInstructor(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]models.Reservation, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]models.Reservation, error)
	ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]models.Reservation, error)
}
