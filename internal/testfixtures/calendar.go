package testfixtures

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/calendar"
)

// FakeCalendar records calls and returns canned results.
type FakeCalendar struct {
	mu sync.Mutex

	IsConnected bool
	Busy        []calendar.Interval
	Event       calendar.Event

	AddErr    error
	DeleteErr error
	BusyErr   error

	Added      []calendar.EventInput
	Deleted    []string
	BusyCalls  int
	LastBusyIn calendar.BusyQuery
}

var _ calendar.Calendar = (*FakeCalendar)(nil)

func (f *FakeCalendar) Connected(context.Context, uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.IsConnected, nil
}

func (f *FakeCalendar) AddEvent(_ context.Context, in calendar.EventInput) (*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Added = append(f.Added, in)
	if f.AddErr != nil {
		return nil, f.AddErr
	}
	ev := f.Event
	return &ev, nil
}

func (f *FakeCalendar) DeleteEvent(_ context.Context, _ uuid.UUID, _ string, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, eventID)
	return f.DeleteErr
}

func (f *FakeCalendar) BusyTimes(_ context.Context, q calendar.BusyQuery) ([]calendar.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BusyCalls++
	f.LastBusyIn = q
	if f.BusyErr != nil {
		return nil, f.BusyErr
	}
	return append([]calendar.Interval(nil), f.Busy...), nil
}
