package reservation

import (
	"time"

	"github.com/yeyakmania/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.Reservation) error {
	if err := CanConfirm(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusConfirmed)
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}

func MarkAttendance(r *models.Reservation, a Attendance) error {
	if err := CanMarkAttendance(Status(r.Status)); err != nil {
		return err
	}
	v := string(a)
	r.AttendanceStatus = &v
	return nil
}
