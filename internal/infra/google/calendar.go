package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

const defaultCalendarID = "primary"

// Calendar talks to Google Calendar on behalf of an instructor using the
// refresh token stored at sign-in.
type Calendar struct {
	oauth    *oauth2.Config
	settings account.SettingsRepository
	sealer   account.TokenSealer
	logger   *slog.Logger

	// extra is appended to the client options; tests point it at a fake API.
	extra []option.ClientOption
}

var _ calendar.Calendar = (*Calendar)(nil)

func NewCalendar(
	oc *oauth2.Config,
	settings account.SettingsRepository,
	sealer account.TokenSealer,
	logger *slog.Logger,
) *Calendar {
	return &Calendar{oauth: oc, settings: settings, sealer: sealer, logger: logger}
}

func (c *Calendar) Connected(ctx context.Context, instructorID uuid.UUID) (bool, error) {
	conn, err := c.settings.GetGoogleConnection(ctx, instructorID)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return conn.CalendarScope && len(conn.EncryptedRefreshToken) > 0, nil
}

func (c *Calendar) service(ctx context.Context, instructorID uuid.UUID) (*gcal.Service, *models.GoogleConnection, error) {
	conn, err := c.settings.GetGoogleConnection(ctx, instructorID)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil, nil, calendar.ErrNotConnected
	}
	if err != nil {
		return nil, nil, err
	}
	if !conn.CalendarScope || len(conn.EncryptedRefreshToken) == 0 {
		return nil, nil, calendar.ErrNotConnected
	}

	refresh, err := c.sealer.Open(conn.EncryptedRefreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("open refresh token: %w", err)
	}

	ts := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: string(refresh)})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, c.extra...)

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, conn, nil
}

func calendarIDOr(id string, conn *models.GoogleConnection) string {
	if id != "" {
		return id
	}
	if conn != nil && conn.CalendarID != "" {
		return conn.CalendarID
	}
	return defaultCalendarID
}

// --------------------------------------------------
// Events
// --------------------------------------------------

func (c *Calendar) AddEvent(ctx context.Context, in calendar.EventInput) (*calendar.Event, error) {
	svc, conn, err := c.service(ctx, in.InstructorID)
	if err != nil {
		return nil, err
	}

	ev := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       &gcal.EventDateTime{DateTime: in.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: in.End.Format(time.RFC3339)},
	}
	for _, email := range in.Attendees {
		if email != "" {
			ev.Attendees = append(ev.Attendees, &gcal.EventAttendee{Email: email})
		}
	}
	if in.WithMeet {
		ev.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
	}

	call := svc.Events.Insert(calendarIDOr(in.CalendarID, conn), ev).
		SendUpdates("all").
		Context(ctx)
	if in.WithMeet {
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	out := &calendar.Event{ID: created.Id, MeetLink: created.HangoutLink}
	if out.MeetLink == "" && created.ConferenceData != nil {
		for _, ep := range created.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				out.MeetLink = ep.Uri
				break
			}
		}
	}
	return out, nil
}

// DeleteEvent treats an already removed event as deleted.
func (c *Calendar) DeleteEvent(ctx context.Context, instructorID uuid.UUID, calendarID, eventID string) error {
	svc, conn, err := c.service(ctx, instructorID)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(calendarIDOr(calendarID, conn), eventID).
		SendUpdates("all").
		Context(ctx).
		Do()

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return nil
	}
	return err
}

// --------------------------------------------------
// Free/busy
// --------------------------------------------------

func (c *Calendar) BusyTimes(ctx context.Context, q calendar.BusyQuery) ([]calendar.Interval, error) {
	svc, conn, err := c.service(ctx, q.InstructorID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var items []*gcal.FreeBusyRequestItem
	for _, id := range q.CalendarIDs {
		id = calendarIDOr(id, conn)
		if seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, &gcal.FreeBusyRequestItem{Id: id})
	}
	if len(items) == 0 {
		items = append(items, &gcal.FreeBusyRequestItem{Id: calendarIDOr("", conn)})
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: q.From.Format(time.RFC3339),
		TimeMax: q.To.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var out []calendar.Interval
	for id, cal := range resp.Calendars {
		if len(cal.Errors) > 0 {
			c.logger.Warn("calendar skipped in free/busy",
				"instructor_id", q.InstructorID,
				"calendar_id", id,
				"reason", cal.Errors[0].Reason,
			)
			continue
		}
		for _, p := range cal.Busy {
			start, err1 := time.Parse(time.RFC3339, p.Start)
			end, err2 := time.Parse(time.RFC3339, p.End)
			if err1 != nil || err2 != nil {
				continue
			}
			out = append(out, calendar.Interval{Start: start, End: end})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
