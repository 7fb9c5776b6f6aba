package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicReservationCreated   = "reservation.created"
	TopicReservationCancelled = "reservation.cancelled"
	TopicReservationReminder  = "reservation.reminder"
	TopicInvitationCreated    = "invitation.created"
)

type ReservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	InstructorID  uuid.UUID `json:"instructor_id"`
	StudentID     uuid.UUID `json:"student_id"`
	CoachingTitle string    `json:"coaching_title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	MeetLink      string    `json:"meet_link,omitempty"`
	Refunded      bool      `json:"refunded,omitempty"`
}

type InvitationEvent struct {
	InvitationID  uuid.UUID `json:"invitation_id"`
	InstructorID  uuid.UUID `json:"instructor_id"`
	Email         string    `json:"email"`
	Code          string    `json:"code"`
	CoachingTitle string    `json:"coaching_title"`
	ExpiresAt     time.Time `json:"expires_at"`
}
