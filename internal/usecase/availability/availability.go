package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/timezone"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

const (
	MaxSpan  = 62 * 24 * time.Hour
	CacheTTL = 2 * time.Minute

	LabelReservation = "예약"
	LabelExternal    = "외부 일정"
)

// BusyCache memoises external busy blocks. A miss returns ok=false.
type BusyCache interface {
	GetBusy(ctx context.Context, key string) ([]calendar.Interval, bool, error)
	SetBusy(ctx context.Context, key string, busy []calendar.Interval, ttl time.Duration) error
}

type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type Availability struct {
	WorkingHours   schedule.Weekly `json:"working_hours"`
	Timezone       string          `json:"timezone"`
	Busy           []BusyInterval  `json:"busy"`
	CalendarSynced bool            `json:"calendar_synced"`
}

type Input struct {
	InstructorID uuid.UUID
	CoachingID   *uuid.UUID
	From         time.Time
	To           time.Time
}

type Calculator struct {
	deps  usecase.Deps
	cache BusyCache
}

// NewCalculator accepts a nil cache.
func NewCalculator(deps usecase.Deps, cache BusyCache) *Calculator {
	return &Calculator{deps: deps, cache: cache}
}

func (c *Calculator) Execute(ctx context.Context, in Input) (*Availability, error) {
	if !in.To.After(in.From) {
		return nil, httperr.Invalid("invalid_time_range")
	}
	if in.To.Sub(in.From) > MaxSpan {
		return nil, httperr.Invalid("range_too_long")
	}

	repos := c.deps.Store.Repos()

	if _, err := repos.Users.GetUser(ctx, in.InstructorID); err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.NotFoundErr("instructor_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	hours, tz, err := c.workingHours(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := hours.Validate(); err != nil {
		return nil, httperr.Invalid("invalid_schedule")
	}

	// --------------------------------------------------
	// Busy: our reservations first
	// --------------------------------------------------
	reservations, err := repos.Reservations.ListBlockingForInstructor(ctx, in.InstructorID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	busy := make([]BusyInterval, 0, len(reservations))
	for _, r := range reservations {
		label := LabelReservation
		if r.Coaching != nil && r.Coaching.Title != "" {
			label = r.Coaching.Title
		}
		busy = append(busy, BusyInterval{Start: r.StartTime, End: r.EndTime, Label: label})
	}

	// --------------------------------------------------
	// Busy: external calendars (best effort)
	// --------------------------------------------------
	external, synced := c.externalBusy(ctx, in)
	for _, b := range external {
		busy = append(busy, BusyInterval{Start: b.Start, End: b.End, Label: LabelExternal})
	}

	return &Availability{
		WorkingHours:   hours,
		Timezone:       tz,
		Busy:           busy,
		CalendarSynced: synced,
	}, nil
}

func (c *Calculator) workingHours(ctx context.Context, in Input) (schedule.Weekly, string, error) {
	repos := c.deps.Store.Repos()

	hours := schedule.Default()
	tz := timezone.DefaultTimezone

	settings, err := repos.Settings.GetSettings(ctx, in.InstructorID)
	switch {
	case err == nil:
		hours = settings.WorkingHours.Data()
		if settings.Timezone != "" {
			tz = settings.Timezone
		}
	case !httperr.IsKind(err, httperr.KindNotFound):
		return schedule.Weekly{}, "", err
	}

	if in.CoachingID != nil {
		coaching, err := repos.Coachings.GetCoaching(ctx, *in.CoachingID)
		if err != nil {
			return schedule.Weekly{}, "", err
		}
		if coaching.InstructorID != in.InstructorID {
			return schedule.Weekly{}, "", httperr.NotFoundErr("coaching_not_found")
		}
		if override := coaching.WorkingHours.Data(); override != nil {
			hours = *override
		}
	}
	return hours, tz, nil
}

// externalBusy never fails; any problem degrades to no external blocks.
func (c *Calculator) externalBusy(ctx context.Context, in Input) ([]calendar.Interval, bool) {
	if c.deps.Calendar == nil {
		return nil, false
	}
	log := c.deps.Log().With("instructor_id", in.InstructorID)

	key := fmt.Sprintf("busy:%s:%d:%d", in.InstructorID, in.From.Unix(), in.To.Unix())
	if c.cache != nil {
		cached, ok, err := c.cache.GetBusy(ctx, key)
		if err != nil {
			log.Warn("busy cache read failed", "error", err)
		} else if ok {
			return cached, true
		}
	}

	octx, cancel := c.deps.Outbound(ctx)
	defer cancel()

	connected, err := c.deps.Calendar.Connected(octx, in.InstructorID)
	if err != nil {
		log.Warn("calendar connection lookup failed", "error", err)
		return nil, false
	}
	if !connected {
		return nil, false
	}

	calendarIDs, err := c.calendarIDs(ctx, in.InstructorID)
	if err != nil {
		log.Warn("coaching calendars unavailable", "error", err)
		return nil, false
	}
	if len(calendarIDs) == 0 {
		// Connected, but no coaching is bound to a calendar.
		return nil, true
	}

	busy, err := c.deps.Calendar.BusyTimes(octx, calendar.BusyQuery{
		InstructorID: in.InstructorID,
		CalendarIDs:  calendarIDs,
		From:         in.From,
		To:           in.To,
	})
	if err != nil {
		log.Warn("external busy lookup failed, using reservations only", "error", err)
		return nil, false
	}

	if c.cache != nil {
		if err := c.cache.SetBusy(ctx, key, busy, CacheTTL); err != nil {
			log.Warn("busy cache write failed", "error", err)
		}
	}
	return busy, true
}

// calendarIDs lists the distinct calendars bound to the instructor's
// coachings. A coaching bound with an empty id uses the connection's
// default calendar.
func (c *Calculator) calendarIDs(ctx context.Context, instructorID uuid.UUID) ([]string, error) {
	coachings, err := c.deps.Store.Repos().Coachings.ListCoachings(ctx, instructorID, false)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var ids []string
	for _, co := range coachings {
		if co.GoogleCalendarID == nil || seen[*co.GoogleCalendarID] {
			continue
		}
		seen[*co.GoogleCalendarID] = true
		ids = append(ids, *co.GoogleCalendarID)
	}
	return ids, nil
}

// ======================================================
// SLOTS
// ======================================================

type SlotsInput struct {
	InstructorID uuid.UUID
	CoachingID   *uuid.UUID
	Date         string
	// Duration defaults to the coaching's duration, then 60 minutes.
	Duration time.Duration
}

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Slots lists bookable starts for one day on the 30-minute grid.
func (c *Calculator) Slots(ctx context.Context, in SlotsInput) ([]Slot, error) {
	tz := timezone.DefaultTimezone
	if s, err := c.deps.Store.Repos().Settings.GetSettings(ctx, in.InstructorID); err == nil && s.Timezone != "" {
		tz = s.Timezone
	}
	loc := timezone.Location(tz)

	day, err := timezone.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.Invalid("invalid_date")
	}
	from := timezone.StartOfDay(day, loc)
	to := from.AddDate(0, 0, 1)

	duration := in.Duration
	if duration <= 0 && in.CoachingID != nil {
		if co, err := c.deps.Store.Repos().Coachings.GetCoaching(ctx, *in.CoachingID); err == nil {
			duration = time.Duration(co.Duration) * time.Minute
		}
	}
	if duration <= 0 {
		duration = time.Hour
	}

	// Reservations that started the evening before may run into this day.
	av, err := c.Execute(ctx, Input{
		InstructorID: in.InstructorID,
		CoachingID:   in.CoachingID,
		From:         from.Add(-12 * time.Hour),
		To:           to,
	})
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(av.Busy))
	for _, b := range av.Busy {
		busy = append(busy, schedule.Interval{Start: b.Start, End: b.End})
	}

	free := schedule.Slots(av.WorkingHours, busy, day, duration, loc)
	out := make([]Slot, 0, len(free))
	now := c.deps.Clock()
	for _, s := range free {
		if s.Start.Before(now) {
			continue
		}
		out = append(out, Slot{Start: s.Start, End: s.End})
	}
	return out, nil
}
