package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	domain "github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/testfixtures"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type fixture struct {
	store *testfixtures.MemStore
	cal   *testfixtures.FakeCalendar
	pub   *testfixtures.Recorder
	clock *testfixtures.Clock
	deps  usecase.Deps

	instructor models.User
	student    models.User
	coaching   models.Coaching
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: testfixtures.NewMemStore(),
		cal:   &testfixtures.FakeCalendar{},
		pub:   &testfixtures.Recorder{},
		clock: testfixtures.NewClock(time.Time{}),
	}
	f.deps = usecase.Deps{
		Store:        f.store,
		Calendar:     f.cal,
		Events:       f.pub,
		Logger:       testfixtures.Logger(),
		Now:          f.clock.Now,
		RefundWindow: 24 * time.Hour,
	}

	f.instructor = f.store.SeedUser(models.User{Email: "coach@example.com", Name: "김코치"}, models.RoleInstructor, models.RoleStudent)
	f.student = f.store.SeedUser(models.User{Email: "student@example.com", Name: "이학생"}, models.RoleStudent)
	f.coaching = f.store.SeedCoaching(models.Coaching{InstructorID: f.instructor.ID, Title: "PT 60분", Slug: "pt-60분", Duration: 60, IsActive: true})
	return f
}

func (f *fixture) seedPackage(remaining, total int) models.Package {
	now := f.clock.Now()
	return f.store.SeedPackage(models.Package{
		InstructorID:      f.instructor.ID,
		StudentID:         f.student.ID,
		TotalSessions:     total,
		RemainingSessions: remaining,
		StartDate:         now.AddDate(0, 0, -1),
		ExpiresAt:         now.AddDate(0, 1, 0),
	})
}

func (f *fixture) input(start time.Time, pkg *uuid.UUID) CreateReservationInput {
	id := f.coaching.ID
	return CreateReservationInput{
		ActorID:      f.instructor.ID,
		StudentID:    f.student.ID,
		InstructorID: f.instructor.ID,
		CoachingID:   &id,
		PackageID:    pkg,
		DeductCredit: pkg != nil,
		Start:        start,
		End:          start.Add(time.Hour),
	}
}

func (f *fixture) remaining(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.GetPackage(context.Background(), id)
	if err != nil {
		t.Fatalf("GetPackage: %v", err)
	}
	return p.RemainingSessions
}

// ======================================================
// CREATE
// ======================================================

func TestCreateConsumesLastCreditThenFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.seedPackage(1, 10)
	uc := NewCreateReservation(f.deps)

	start := f.clock.Now().Add(48 * time.Hour)
	r, err := uc.Execute(ctx, f.input(start, &pkg.ID))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if !r.CreditDeducted || r.Status != string(domain.StatusConfirmed) {
		t.Fatalf("unexpected reservation %+v", r)
	}
	if got := f.remaining(t, pkg.ID); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}

	_, err = uc.Execute(ctx, f.input(start.Add(2*time.Hour), &pkg.ID))
	if !httperr.IsKind(err, httperr.KindInsufficientCredit) {
		t.Fatalf("expected insufficient credit, got %v", err)
	}
	if got := f.remaining(t, pkg.ID); got != 0 {
		t.Fatalf("remaining changed to %d", got)
	}
	if n := len(f.store.Reservations()); n != 1 {
		t.Fatalf("failed booking left a reservation behind: %d rows", n)
	}
}

func TestStudentBookingAlwaysDeducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.seedPackage(1, 1)

	in := f.input(f.clock.Now().Add(48*time.Hour), &pkg.ID)
	in.ActorID = f.student.ID
	in.DeductCredit = false
	r, err := NewCreateReservation(f.deps).Execute(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !r.CreditDeducted || f.remaining(t, pkg.ID) != 0 {
		t.Fatalf("credit_deducted=%v remaining=%d", r.CreditDeducted, f.remaining(t, pkg.ID))
	}

	in.Start = in.Start.Add(2 * time.Hour)
	in.End = in.End.Add(2 * time.Hour)
	if _, err := NewCreateReservation(f.deps).Execute(ctx, in); !httperr.IsKind(err, httperr.KindInsufficientCredit) {
		t.Fatalf("expected insufficient credit, got %v", err)
	}

	// The instructor can still record a session without touching the balance.
	in.ActorID = f.instructor.ID
	manual, err := NewCreateReservation(f.deps).Execute(ctx, in)
	if err != nil || manual.CreditDeducted {
		t.Fatalf("manual booking: %v %+v", err, manual)
	}
}

func TestCreateValidatesInstants(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)

	start := f.clock.Now().Add(24 * time.Hour)
	in := f.input(start, nil)
	in.End = start
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}

	// 23:30 to 00:30 the next day is a valid hour-long session.
	late := time.Date(2026, 3, 5, 23, 30, 0, 0, start.Location())
	in = f.input(late, nil)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("midnight spanning reservation rejected: %v", err)
	}
}

func TestCreateRejectsBadStatusAndStrangers(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)
	start := f.clock.Now().Add(24 * time.Hour)

	in := f.input(start, nil)
	in.Status = "completed"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}

	in = f.input(start, nil)
	in.ActorID = uuid.New()
	if _, err := uc.Execute(context.Background(), in); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	in = f.input(start, nil)
	in.Status = "pending"
	r, err := uc.Execute(context.Background(), in)
	if err != nil || r.Status != "pending" {
		t.Fatalf("pending booking: %v %+v", err, r)
	}
}

func TestCreateRejectsUnusablePackage(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)
	now := f.clock.Now()

	expired := f.store.SeedPackage(models.Package{
		InstructorID: f.instructor.ID, StudentID: f.student.ID,
		TotalSessions: 5, RemainingSessions: 5,
		StartDate: now.AddDate(0, -2, 0), ExpiresAt: now.Add(time.Hour),
	})
	if _, err := uc.Execute(context.Background(), f.input(now.Add(2*time.Hour), &expired.ID)); !httperr.IsBusiness(err, "package_expired") {
		t.Fatalf("expected package_expired, got %v", err)
	}

	foreign := f.store.SeedPackage(models.Package{
		InstructorID: f.instructor.ID, StudentID: uuid.New(),
		TotalSessions: 5, RemainingSessions: 5,
		StartDate: now, ExpiresAt: now.AddDate(0, 1, 0),
	})
	if _, err := uc.Execute(context.Background(), f.input(now.Add(2*time.Hour), &foreign.ID)); !httperr.IsBusiness(err, "package_mismatch") {
		t.Fatalf("expected package_mismatch, got %v", err)
	}
	if got := f.remaining(t, foreign.ID); got != 5 {
		t.Fatalf("foreign package touched: %d", got)
	}
}

func TestCreateSurvivesCalendarFailure(t *testing.T) {
	f := newFixture(t)
	f.cal.IsConnected = true
	f.cal.AddErr = errors.New("google down")

	r, err := NewCreateReservation(f.deps).Execute(context.Background(), f.input(f.clock.Now().Add(48*time.Hour), nil))
	if err != nil {
		t.Fatalf("booking must not fail on calendar errors: %v", err)
	}
	if r.MeetLink != nil || r.GoogleEventID != nil {
		t.Fatalf("calendar fields set despite failure")
	}
	if len(f.cal.Added) != 1 {
		t.Fatalf("expected one calendar attempt, got %d", len(f.cal.Added))
	}
	if topics := f.pub.Topics(); len(topics) != 1 || topics[0] != events.TopicReservationCreated {
		t.Fatalf("unexpected events %v", topics)
	}
}

func TestCreateRecordsMeetLink(t *testing.T) {
	f := newFixture(t)
	f.cal.IsConnected = true
	f.cal.Event = calendar.Event{ID: "evt-1", MeetLink: "https://meet.google.com/abc-defg-hij"}

	r, err := NewCreateReservation(f.deps).Execute(context.Background(), f.input(f.clock.Now().Add(48*time.Hour), nil))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	stored, _ := f.store.GetReservation(context.Background(), r.ID)
	if stored.GoogleEventID == nil || *stored.GoogleEventID != "evt-1" || *stored.MeetLink != f.cal.Event.MeetLink {
		t.Fatalf("calendar event not stored: %+v", stored)
	}
	if got := f.cal.Added[0].Attendees; len(got) != 1 || got[0] != f.student.Email {
		t.Fatalf("attendees = %v", got)
	}
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelRefundWindow(t *testing.T) {
	tests := []struct {
		name         string
		untilStart   time.Duration
		skip         bool
		wantRefunded bool
	}{
		{"well ahead", 72 * time.Hour, false, true},
		{"exactly 24h", 24 * time.Hour, false, true},
		{"inside window", 23 * time.Hour, false, false},
		{"instructor waiver", time.Hour, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			pkg := f.seedPackage(5, 5)

			r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(tt.untilStart), &pkg.ID))
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			res, err := NewCancelReservation(f.deps).Execute(ctx, CancelInput{
				ReservationID: r.ID,
				ActorID:       f.instructor.ID,
				SkipTimeCheck: tt.skip,
			})
			if err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if res.Refunded != tt.wantRefunded {
				t.Fatalf("refunded = %v, want %v", res.Refunded, tt.wantRefunded)
			}
			if res.Reservation.Status != string(domain.StatusCancelled) || res.Reservation.CancelledAt == nil {
				t.Fatalf("reservation not cancelled: %+v", res.Reservation)
			}

			want := 4
			if tt.wantRefunded {
				want = 5
			}
			if got := f.remaining(t, pkg.ID); got != want {
				t.Fatalf("remaining = %d, want %d", got, want)
			}
		})
	}
}

func TestCancelTwiceRefundsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.seedPackage(3, 3)

	r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(72*time.Hour), &pkg.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancel := NewCancelReservation(f.deps)
	first, err := cancel.Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.student.ID})
	if err != nil || !first.Refunded {
		t.Fatalf("first cancel: %v %+v", err, first)
	}
	second, err := cancel.Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.student.ID})
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if second.Refunded || second.Reservation.Status != string(domain.StatusCancelled) {
		t.Fatalf("second cancel = %+v", second)
	}
	if got := f.remaining(t, pkg.ID); got != 3 {
		t.Fatalf("remaining = %d, want 3", got)
	}

	cancelled := 0
	for _, topic := range f.pub.Topics() {
		if topic == events.TopicReservationCancelled {
			cancelled++
		}
	}
	if cancelled != 1 {
		t.Fatalf("expected one cancellation event, got %d", cancelled)
	}
}

func TestCancelHonoursInstructorWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hours := 48
	f.store.SeedSettings(models.InstructorSettings{InstructorID: f.instructor.ID, RefundWindowHours: &hours})
	pkg := f.seedPackage(2, 2)

	r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(30*time.Hour), &pkg.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := NewCancelReservation(f.deps).Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.student.ID})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.Refunded {
		t.Fatal("30h ahead is inside a 48h window")
	}
}

func TestCancelWithVanishedPackageRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.seedPackage(2, 2)

	r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(72*time.Hour), &pkg.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.store.DeletePackage(ctx, pkg.ID); err != nil {
		t.Fatalf("DeletePackage: %v", err)
	}

	_, err = NewCancelReservation(f.deps).Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.instructor.ID})
	if !httperr.IsBusiness(err, "package_not_found") {
		t.Fatalf("expected package_not_found, got %v", err)
	}
	stored, _ := f.store.GetReservation(ctx, r.ID)
	if stored.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status changed despite rollback: %s", stored.Status)
	}
}

func TestCancelChecksOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(72*time.Hour), nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancel := NewCancelReservation(f.deps)
	if _, err := cancel.Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: uuid.New()}); !httperr.IsBusiness(err, "reservation_not_found") {
		t.Fatalf("expected reservation_not_found, got %v", err)
	}
	if _, err := cancel.Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.student.ID, SkipTimeCheck: true}); !httperr.IsBusiness(err, "instructor_only") {
		t.Fatalf("expected instructor_only, got %v", err)
	}
	if _, err := cancel.Execute(ctx, CancelInput{ReservationID: uuid.New(), ActorID: f.student.ID}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelRemovesCalendarEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.cal.IsConnected = true
	f.cal.Event = calendar.Event{ID: "evt-9"}
	f.cal.DeleteErr = errors.New("gone")

	r, err := NewCreateReservation(f.deps).Execute(ctx, f.input(f.clock.Now().Add(72*time.Hour), nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := NewCancelReservation(f.deps).Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.instructor.ID}); err != nil {
		t.Fatalf("cancel must ignore calendar errors: %v", err)
	}
	if len(f.cal.Deleted) != 1 || f.cal.Deleted[0] != "evt-9" {
		t.Fatalf("deleted = %v", f.cal.Deleted)
	}
}

func TestCancelCompletedIsRejected(t *testing.T) {
	f := newFixture(t)
	r := f.store.SeedReservation(models.Reservation{
		StudentID: f.student.ID, InstructorID: f.instructor.ID,
		StartTime: f.clock.Now().Add(-2 * time.Hour), EndTime: f.clock.Now().Add(-time.Hour),
		Status: string(domain.StatusCompleted),
	})
	_, err := NewCancelReservation(f.deps).Execute(context.Background(), CancelInput{ReservationID: r.ID, ActorID: f.instructor.ID})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

// ======================================================
// TRANSITIONS
// ======================================================

func TestConfirmCompleteAndAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input(f.clock.Now().Add(24*time.Hour), nil)
	in.Status = "pending"
	r, err := NewCreateReservation(f.deps).Execute(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	attendance := NewMarkAttendance(f.deps)
	if _, err := attendance.Execute(ctx, f.instructor.ID, r.ID, "attended"); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("attendance on pending: %v", err)
	}
	if _, err := attendance.Execute(ctx, f.instructor.ID, r.ID, "asleep"); !httperr.IsBusiness(err, "invalid_attendance") {
		t.Fatalf("expected invalid_attendance, got %v", err)
	}

	if _, err := NewConfirmReservation(f.deps).Execute(ctx, uuid.New(), r.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("other instructor must not see the reservation: %v", err)
	}
	if _, err := NewConfirmReservation(f.deps).Execute(ctx, f.instructor.ID, r.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	got, err := attendance.Execute(ctx, f.instructor.ID, r.ID, "late")
	if err != nil || *got.AttendanceStatus != "late" {
		t.Fatalf("attendance on confirmed: %v", err)
	}
	done, err := NewCompleteReservation(f.deps).Execute(ctx, f.instructor.ID, r.ID)
	if err != nil || done.Status != string(domain.StatusCompleted) {
		t.Fatalf("complete: %v", err)
	}
	if _, err := attendance.Execute(ctx, f.instructor.ID, r.ID, "attended"); err != nil {
		t.Fatalf("attendance on completed: %v", err)
	}
}

// cancellingStore cancels a reservation right after the next read, the way
// a request committing between a transition's read and write would.
type cancellingStore struct {
	*testfixtures.MemStore
	onRead func()
}

func (s *cancellingStore) Repos() store.Repos {
	r := s.MemStore.Repos()
	r.Reservations = cancellingReads{Repository: r.Reservations, store: s}
	return r
}

type cancellingReads struct {
	domain.Repository
	store *cancellingStore
}

func (r cancellingReads) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := r.Repository.GetReservation(ctx, id)
	if hook := r.store.onRead; hook != nil {
		r.store.onRead = nil
		hook()
	}
	return res, err
}

func TestTransitionsDoNotResurrectCancelled(t *testing.T) {
	tests := []struct {
		name   string
		status string
		run    func(deps usecase.Deps, instructorID, id uuid.UUID) error
	}{
		{"confirm", "pending", func(deps usecase.Deps, instructorID, id uuid.UUID) error {
			_, err := NewConfirmReservation(deps).Execute(context.Background(), instructorID, id)
			return err
		}},
		{"complete", "confirmed", func(deps usecase.Deps, instructorID, id uuid.UUID) error {
			_, err := NewCompleteReservation(deps).Execute(context.Background(), instructorID, id)
			return err
		}},
		{"attendance", "confirmed", func(deps usecase.Deps, instructorID, id uuid.UUID) error {
			_, err := NewMarkAttendance(deps).Execute(context.Background(), instructorID, id, "attended")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			pkg := f.seedPackage(5, 5)

			in := f.input(f.clock.Now().Add(72*time.Hour), &pkg.ID)
			in.Status = tt.status
			r, err := NewCreateReservation(f.deps).Execute(ctx, in)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			racing := &cancellingStore{MemStore: f.store}
			racing.onRead = func() {
				res, err := NewCancelReservation(f.deps).Execute(ctx, CancelInput{ReservationID: r.ID, ActorID: f.student.ID})
				if err != nil || !res.Refunded {
					t.Errorf("concurrent cancel: %v %+v", err, res)
				}
			}
			deps := f.deps
			deps.Store = racing

			if err := tt.run(deps, f.instructor.ID, r.ID); !httperr.IsBusiness(err, "invalid_state") {
				t.Fatalf("expected invalid_state, got %v", err)
			}
			stored, _ := f.store.GetReservation(ctx, r.ID)
			if stored.Status != string(domain.StatusCancelled) || stored.AttendanceStatus != nil {
				t.Fatalf("stored = %s attendance=%v, want untouched cancellation", stored.Status, stored.AttendanceStatus)
			}
			if got := f.remaining(t, pkg.ID); got != 5 {
				t.Fatalf("remaining = %d, want 5", got)
			}
		})
	}
}

func TestAttendanceRejectedOnCancelled(t *testing.T) {
	f := newFixture(t)
	r := f.store.SeedReservation(models.Reservation{
		StudentID: f.student.ID, InstructorID: f.instructor.ID,
		StartTime: f.clock.Now(), EndTime: f.clock.Now().Add(time.Hour),
		Status: string(domain.StatusCancelled),
	})
	_, err := NewMarkAttendance(f.deps).Execute(context.Background(), f.instructor.ID, r.ID, "absent")
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

// ======================================================
// LIST
// ======================================================

func TestListReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	for _, d := range []time.Duration{time.Hour, 26 * time.Hour, 40 * 24 * time.Hour} {
		f.store.SeedReservation(models.Reservation{
			StudentID: f.student.ID, InstructorID: f.instructor.ID,
			StartTime: now.Add(d), EndTime: now.Add(d + time.Hour),
			Status: string(domain.StatusConfirmed),
		})
	}

	list := NewListReservations(f.deps)
	got, err := list.Execute(ctx, ListInput{UserID: f.instructor.ID, As: AsInstructor, From: now, To: now.AddDate(0, 0, 7)})
	if err != nil || len(got) != 2 {
		t.Fatalf("instructor list: %v %d", err, len(got))
	}
	got, err = list.Execute(ctx, ListInput{UserID: f.student.ID, From: now, To: now.AddDate(0, 2, 0)})
	if err != nil || len(got) != 3 {
		t.Fatalf("student list: %v %d", err, len(got))
	}
	if _, err := list.Execute(ctx, ListInput{UserID: f.student.ID, From: now, To: now}); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}
	if _, err := list.Execute(ctx, ListInput{UserID: f.student.ID, From: now, To: now.AddDate(1, 0, 0)}); !httperr.IsBusiness(err, "range_too_long") {
		t.Fatalf("expected range_too_long, got %v", err)
	}
}

func TestMonthRange(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	from, to, err := MonthRange(2026, time.February, loc)
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if from.Day() != 1 || to.Month() != time.March || to.Sub(from) != 28*24*time.Hour {
		t.Fatalf("range = %v - %v", from, to)
	}
	if _, _, err := MonthRange(2026, 13, loc); err == nil {
		t.Fatal("month 13 must fail")
	}
}
