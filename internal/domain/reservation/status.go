package reservation

import "github.com/yeyakmania/booking-api/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Attendance string

const (
	AttendanceAttended Attendance = "attended"
	AttendanceAbsent   Attendance = "absent"
	AttendanceLate     Attendance = "late"
)

func ValidAttendance(a string) bool {
	switch Attendance(a) {
	case AttendanceAttended, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status occupies its slot.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// InitialStatus resolves the requested creation status, defaulting to confirmed.
func InitialStatus(requested string) (Status, error) {
	switch Status(requested) {
	case "":
		return StatusConfirmed, nil
	case StatusPending, StatusConfirmed:
		return Status(requested), nil
	default:
		return "", httperr.Invalid("invalid_status")
	}
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

// CanCancel rejects only reservations that already finished.
// Cancelling a cancelled reservation is handled as a no-op by the caller.
func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func CanMarkAttendance(current Status) error {
	if current != StatusConfirmed && current != StatusCompleted {
		return httperr.Conflict("invalid_state")
	}
	return nil
}
