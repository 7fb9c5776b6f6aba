package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/timezone"
)

// ReminderJob publishes a reminder for every confirmed reservation that
// starts on the next calendar day.
type ReminderJob struct {
	reservations reservation.Repository
	events       events.Publisher
	logger       *slog.Logger
	loc          *time.Location
	now          func() time.Time
}

func NewReminderJob(
	reservations reservation.Repository,
	pub events.Publisher,
	logger *slog.Logger,
	tz string,
	now func() time.Time,
) *ReminderJob {
	if now == nil {
		now = time.Now
	}
	return &ReminderJob{
		reservations: reservations,
		events:       pub,
		logger:       logger,
		loc:          timezone.Location(tz),
		now:          now,
	}
}

// Run returns how many reminders were published.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	from := timezone.StartOfDay(j.now(), j.loc).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	list, err := j.reservations.ListConfirmedBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range list {
		title := "예약"
		if r.Coaching != nil {
			title = r.Coaching.Title
		}
		meet := ""
		if r.MeetLink != nil {
			meet = *r.MeetLink
		}

		err := j.events.Publish(ctx, events.TopicReservationReminder, events.ReservationEvent{
			ReservationID: r.ID,
			InstructorID:  r.InstructorID,
			StudentID:     r.StudentID,
			CoachingTitle: title,
			Start:         r.StartTime,
			End:           r.EndTime,
			MeetLink:      meet,
		})
		if err != nil {
			j.logger.Warn("reminder publish failed", "reservation_id", r.ID, "error", err)
			continue
		}
		sent++
	}

	j.logger.Info("reminders published", "day", from.Format("2006-01-02"), "count", sent)
	return sent, nil
}
