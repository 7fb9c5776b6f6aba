package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/timezone"
)

// Notifier turns domain events into emails, text messages and Notion pages
// according to each instructor's preferences. Any channel may be nil.
type Notifier struct {
	users    account.UserRepository
	settings account.SettingsRepository

	mail   Mailer
	sms    SMSSender
	notion NotionWriter

	logger  *slog.Logger
	timeout time.Duration
}

type Channels struct {
	Mail   Mailer
	SMS    SMSSender
	Notion NotionWriter
}

func NewNotifier(
	users account.UserRepository,
	settings account.SettingsRepository,
	ch Channels,
	logger *slog.Logger,
	timeout time.Duration,
) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		users:    users,
		settings: settings,
		mail:     ch.Mail,
		sms:      ch.SMS,
		notion:   ch.Notion,
		logger:   logger,
		timeout:  timeout,
	}
}

// Register subscribes every handler on bus.
func (n *Notifier) Register(ctx context.Context, bus *events.Bus) error {
	handlers := map[string]events.Handler{
		events.TopicReservationCreated:   n.HandleReservationCreated,
		events.TopicReservationCancelled: n.HandleReservationCancelled,
		events.TopicReservationReminder:  n.HandleReservationReminder,
		events.TopicInvitationCreated:    n.HandleInvitationCreated,
	}
	for topic, h := range handlers {
		if err := bus.Subscribe(ctx, topic, h); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}

// --------------------------------------------------
// Recipients
// --------------------------------------------------

type audience struct {
	instructor *models.User
	student    *models.User
	prefs      *models.InstructorSettings
	loc        *time.Location
}

func (n *Notifier) audience(ctx context.Context, instructorID, studentID uuid.UUID) (*audience, error) {
	a := &audience{}

	var err error
	if a.instructor, err = n.users.GetUser(ctx, instructorID); err != nil {
		return nil, fmt.Errorf("load instructor: %w", err)
	}
	if studentID != uuid.Nil {
		if a.student, err = n.users.GetUser(ctx, studentID); err != nil {
			return nil, fmt.Errorf("load student: %w", err)
		}
	}

	a.prefs, err = n.settings.GetSettings(ctx, instructorID)
	switch {
	case httperr.IsKind(err, httperr.KindNotFound):
		a.prefs = &models.InstructorSettings{NotifyEmail: true, Timezone: timezone.DefaultTimezone}
	case err != nil:
		return nil, fmt.Errorf("load settings: %w", err)
	}
	a.loc = timezone.Location(a.prefs.Timezone)
	return a, nil
}

func (a *audience) emails() []string {
	var out []string
	for _, u := range []*models.User{a.student, a.instructor} {
		if u != nil && u.Email != "" {
			out = append(out, u.Email)
		}
	}
	return out
}

// --------------------------------------------------
// Delivery
// --------------------------------------------------

func (n *Notifier) deliver(ctx context.Context, a *audience, body note, page *ReservationPage) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	var errs []error

	if n.mail != nil && a.prefs.NotifyEmail {
		if to := a.emails(); len(to) > 0 {
			if err := n.mail.Send(ctx, body.mail(to...)); err != nil {
				errs = append(errs, fmt.Errorf("email: %w", err))
			}
		}
	}

	if n.sms != nil && a.prefs.NotifySMS && a.student != nil && a.student.Phone != "" {
		if err := n.sms.SendSMS(ctx, a.student.Phone, body.text()); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		}
	}

	if n.notion != nil && page != nil && a.prefs.NotionEnabled {
		if err := n.notion.AddReservation(ctx, *page); err != nil {
			errs = append(errs, fmt.Errorf("notion: %w", err))
		}
	}

	return errors.Join(errs...)
}

func titleOr(title string) string {
	if title == "" {
		return "코칭"
	}
	return title
}

func (n *Notifier) page(ev events.ReservationEvent, a *audience, status string) *ReservationPage {
	student := ""
	if a.student != nil {
		student = a.student.Name
	}
	return &ReservationPage{
		Title:   titleOr(ev.CoachingTitle),
		Student: student,
		Start:   ev.Start.In(a.loc),
		End:     ev.End.In(a.loc),
		Status:  status,
		Meet:    ev.MeetLink,
	}
}

// --------------------------------------------------
// Handlers
// --------------------------------------------------

func (n *Notifier) reservation(msg *message.Message) (events.ReservationEvent, error) {
	ev, err := events.Decode[events.ReservationEvent](msg)
	if err != nil {
		return ev, fmt.Errorf("decode reservation event: %w", err)
	}
	return ev, nil
}

func (n *Notifier) HandleReservationCreated(ctx context.Context, msg *message.Message) error {
	ev, err := n.reservation(msg)
	if err != nil {
		return err
	}
	a, err := n.audience(ctx, ev.InstructorID, ev.StudentID)
	if err != nil {
		return err
	}
	slot := formatSlot(ev.Start, ev.End, a.loc)
	return n.deliver(ctx, a, bookedMessage(titleOr(ev.CoachingTitle), slot, ev.MeetLink), n.page(ev, a, "확정"))
}

func (n *Notifier) HandleReservationCancelled(ctx context.Context, msg *message.Message) error {
	ev, err := n.reservation(msg)
	if err != nil {
		return err
	}
	a, err := n.audience(ctx, ev.InstructorID, ev.StudentID)
	if err != nil {
		return err
	}
	slot := formatSlot(ev.Start, ev.End, a.loc)
	return n.deliver(ctx, a, cancelledMessage(titleOr(ev.CoachingTitle), slot, ev.Refunded), n.page(ev, a, "취소"))
}

func (n *Notifier) HandleReservationReminder(ctx context.Context, msg *message.Message) error {
	ev, err := n.reservation(msg)
	if err != nil {
		return err
	}
	a, err := n.audience(ctx, ev.InstructorID, ev.StudentID)
	if err != nil {
		return err
	}
	// Reminders go to the student only.
	a.instructor = nil
	slot := formatSlot(ev.Start, ev.End, a.loc)
	return n.deliver(ctx, a, reminderMessage(titleOr(ev.CoachingTitle), slot, ev.MeetLink), nil)
}

// HandleInvitationCreated always emails the invitee, regardless of the
// instructor's notification preferences.
func (n *Notifier) HandleInvitationCreated(ctx context.Context, msg *message.Message) error {
	ev, err := events.Decode[events.InvitationEvent](msg)
	if err != nil {
		return fmt.Errorf("decode invitation event: %w", err)
	}
	if n.mail == nil {
		return nil
	}
	a, err := n.audience(ctx, ev.InstructorID, uuid.Nil)
	if err != nil {
		return err
	}

	name := a.instructor.Name
	if a.instructor.StudioName != "" {
		name = a.instructor.StudioName
	}
	m := invitationMessage(name, titleOr(ev.CoachingTitle), ev.Code, ev.ExpiresAt, a.loc)

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.mail.Send(ctx, m.mail(ev.Email)); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}
