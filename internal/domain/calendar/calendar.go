package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotConnected is returned when the user has no usable Google connection.
var ErrNotConnected = errors.New("calendar not connected")

type EventInput struct {
	InstructorID uuid.UUID
	CalendarID   string
	Summary      string
	Description  string
	Start        time.Time
	End          time.Time
	Attendees    []string
	// WithMeet requests a Google Meet conference on the event.
	WithMeet bool
}

type Event struct {
	ID       string
	MeetLink string
}

type BusyQuery struct {
	InstructorID uuid.UUID
	CalendarIDs  []string
	From         time.Time
	To           time.Time
}

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Calendar is the external calendar collaborator. Implementations bound
// every call with the outbound timeout.
type Calendar interface {
	Connected(ctx context.Context, instructorID uuid.UUID) (bool, error)
	AddEvent(ctx context.Context, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, instructorID uuid.UUID, calendarID, eventID string) error
	BusyTimes(ctx context.Context, q BusyQuery) ([]Interval, error)
}
