package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/config"
	"github.com/yeyakmania/booking-api/internal/infra/cache"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/testfixtures"
	"github.com/yeyakmania/booking-api/internal/usecase"
	ucAccount "github.com/yeyakmania/booking-api/internal/usecase/account"
	"github.com/yeyakmania/booking-api/internal/validators"
)

const secret = "routes-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubAudit struct {
	instructorID uuid.UUID
	filter       audit.Filter
}

func (s *stubAudit) List(_ context.Context, instructorID uuid.UUID, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.instructorID = instructorID
	s.filter = f
	return []models.AuditLog{{ID: 1, InstructorID: instructorID, Action: "coaching_created"}}, 1, nil
}

type app struct {
	t          *testing.T
	router     *gin.Engine
	store      *testfixtures.MemStore
	audit      *stubAudit
	instructor models.User
	student    models.User
	coaching   models.Coaching
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := testfixtures.NewMemStore()
	clock := testfixtures.NewClock(time.Time{})

	a := &app{t: t, store: store, audit: &stubAudit{}}
	a.instructor = store.SeedUser(models.User{Email: "coach@example.com", Name: "코치"}, "instructor", "student")
	a.student = store.SeedUser(models.User{Email: "student@example.com", Name: "학생"}, "student")
	a.coaching = store.SeedCoaching(models.Coaching{
		InstructorID: a.instructor.ID, Title: "PT", Slug: "pt", Duration: 60, IsActive: true,
	})

	cfg := &config.Config{JWTSecret: secret, JWTTTL: time.Hour}
	r := gin.New()
	RegisterRoutes(r, Infra{
		Deps: usecase.Deps{
			Store:        store,
			Logger:       testfixtures.Logger(),
			Now:          clock.Now,
			RefundWindow: 24 * time.Hour,
		},
		States:    cache.NewMemoryStates(),
		AuditLogs: a.audit,
		Logger:    testfixtures.Logger(),
	}, cfg)
	a.router = r
	return a
}

// token is signed against the wall clock so the middleware accepts it.
func (a *app) token(u models.User, role string) string {
	tok, err := ucAccount.NewTokenIssuer(secret, time.Hour, nil).Issue(&u, role)
	if err != nil {
		a.t.Fatal(err)
	}
	return tok
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[struct {
		Code string `json:"error_code"`
	}](t, w).Code
}

// ======================================================
// Tests
// ======================================================

func TestHealthAndAuth(t *testing.T) {
	a := newApp(t)

	if w := a.do(http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
	if w := a.do(http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /me = %d", w.Code)
	}

	w := a.do(http.MethodGet, "/api/me", a.token(a.student, "student"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/me = %d %s", w.Code, w.Body.String())
	}
	me := decode[ucAccount.ProfileView](t, w)
	if me.User.Email != "student@example.com" || me.Roles.Primary != "student" {
		t.Fatalf("me = %+v", me)
	}
}

func TestGoogleCallbackRequiresState(t *testing.T) {
	a := newApp(t)
	if w := a.do(http.MethodPost, "/api/auth/google/callback", "", map[string]string{"code": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("callback without state = %d", w.Code)
	}
}

func TestInstructorOnlyRoutes(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodPost, "/api/coachings", a.token(a.student, "student"), map[string]any{"title": "요가", "duration": 50})
	if w.Code != http.StatusForbidden || errorCode(t, w) != "instructor_only" {
		t.Fatalf("student create coaching = %d %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPost, "/api/coachings", a.token(a.instructor, "instructor"), map[string]any{"title": "Yoga Basics", "duration": 50})
	if w.Code != http.StatusCreated {
		t.Fatalf("create coaching = %d %s", w.Code, w.Body.String())
	}
	if c := decode[models.Coaching](t, w); c.Slug != "yoga-basics" || c.InstructorID != a.instructor.ID {
		t.Fatalf("coaching = %+v", c)
	}

	w = a.do(http.MethodGet, "/api/public/instructors/"+a.instructor.ID.String()+"/coachings/pt", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public by slug = %d %s", w.Code, w.Body.String())
	}
}

func TestInvalidPathID(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodPatch, "/api/reservations/not-a-uuid/cancel", a.token(a.student, "student"), nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_id" {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
}

func TestBookAndCancelWithCredit(t *testing.T) {
	a := newApp(t)
	now := testfixtures.ReferenceTime()
	pkg := a.store.SeedPackage(models.Package{
		InstructorID:      a.instructor.ID,
		StudentID:         a.student.ID,
		TotalSessions:     1,
		RemainingSessions: 1,
		StartDate:         now.AddDate(0, 0, -1),
		ExpiresAt:         now.AddDate(0, 1, 0),
	})
	studentToken := a.token(a.student, "student")

	start := now.Add(48 * time.Hour)
	book := map[string]any{
		"instructor_id": a.instructor.ID,
		"coaching_id":   a.coaching.ID,
		"package_id":    pkg.ID,
		"deduct_credit": true,
		"start_time":    start,
		"end_time":      start.Add(time.Hour),
	}

	w := a.do(http.MethodPost, "/api/reservations", studentToken, book)
	if w.Code != http.StatusCreated {
		t.Fatalf("book = %d %s", w.Code, w.Body.String())
	}
	created := decode[models.Reservation](t, w)
	if !created.CreditDeducted || created.StudentID != a.student.ID {
		t.Fatalf("reservation = %+v", created)
	}

	book["start_time"] = start.Add(2 * time.Hour)
	book["end_time"] = start.Add(3 * time.Hour)
	w = a.do(http.MethodPost, "/api/reservations", studentToken, book)
	if w.Code != http.StatusUnprocessableEntity || errorCode(t, w) != "insufficient_credit" {
		t.Fatalf("second booking = %d %s", w.Code, w.Body.String())
	}
	if n := len(a.store.Reservations()); n != 1 {
		t.Fatalf("reservations = %d, want 1", n)
	}

	w = a.do(http.MethodGet, "/api/reservations?from=2026-03-04&to=2026-03-04&as=student", studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	if l := decode[struct{ Total int }](t, w); l.Total != 1 {
		t.Fatalf("listed %d", l.Total)
	}
	w = a.do(http.MethodGet, "/api/reservations?date=2026-03-04&as=student", studentToken, nil)
	if l := decode[struct{ Total int }](t, w); w.Code != http.StatusOK || l.Total != 1 {
		t.Fatalf("list by date = %d %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPatch, "/api/reservations/"+created.ID.String()+"/cancel", studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel = %d %s", w.Code, w.Body.String())
	}
	if res := decode[struct{ Refunded bool }](t, w); !res.Refunded {
		t.Fatal("expected refund")
	}
	if got := a.store.Packages()[0].RemainingSessions; got != 1 {
		t.Fatalf("remaining = %d, want 1", got)
	}

	w = a.do(http.MethodPatch, "/api/reservations/"+created.ID.String()+"/cancel", studentToken, nil)
	if res := decode[struct{ Refunded bool }](t, w); w.Code != http.StatusOK || res.Refunded {
		t.Fatalf("second cancel = %d %s", w.Code, w.Body.String())
	}
}

func TestInvitationRoundTrip(t *testing.T) {
	a := newApp(t)
	newcomer := a.store.SeedUser(models.User{Email: "new@example.com", Name: "신규"})

	w := a.do(http.MethodPost, "/api/invitations", a.token(a.instructor, "instructor"), map[string]any{
		"coaching_id": a.coaching.ID,
		"email":       "New@Example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("invite = %d %s", w.Code, w.Body.String())
	}
	inv := decode[models.Invitation](t, w)

	w = a.do(http.MethodGet, "/api/public/invitations/"+inv.InvitationCode, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lookup = %d %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPost, "/api/invitations/"+inv.InvitationCode+"/accept", a.token(a.student, "student"), nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invitation_email_mismatch" {
		t.Fatalf("wrong user accept = %d %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPost, "/api/invitations/"+inv.InvitationCode+"/accept", a.token(newcomer, ""), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept = %d %s", w.Code, w.Body.String())
	}
	if len(a.store.Links()) != 1 {
		t.Fatalf("links = %v", a.store.Links())
	}
}

func TestAvailabilityWithoutCalendar(t *testing.T) {
	a := newApp(t)
	start := testfixtures.ReferenceTime().Add(2 * time.Hour)
	a.store.SeedReservation(models.Reservation{
		InstructorID: a.instructor.ID,
		StudentID:    a.student.ID,
		CoachingID:   &a.coaching.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Status:       "confirmed",
	})

	path := "/api/instructors/" + a.instructor.ID.String() + "/availability?from=2026-03-02&to=2026-03-08"
	w := a.do(http.MethodGet, path, a.token(a.student, "student"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability = %d %s", w.Code, w.Body.String())
	}
	res := decode[struct {
		Busy           []struct{ Label string }
		CalendarSynced bool `json:"calendar_synced"`
	}](t, w)
	if len(res.Busy) != 1 || res.Busy[0].Label != "PT" || res.CalendarSynced {
		t.Fatalf("availability = %+v", res)
	}
}

func TestSettingsValidation(t *testing.T) {
	a := newApp(t)
	tok := a.token(a.instructor, "instructor")

	bad := map[string]any{"working_hours": []map[string]any{
		{"enabled": true, "blocks": []map[string]string{{"start": "09:15", "end": "18:00"}}},
		{}, {}, {}, {}, {}, {},
	}}
	w := a.do(http.MethodPut, "/api/me/settings", tok, bad)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_schedule" {
		t.Fatalf("bad schedule = %d %s", w.Code, w.Body.String())
	}

	w = a.do(http.MethodPut, "/api/me/settings", tok, map[string]any{"refund_window_hours": 48, "notify_sms": true})
	if w.Code != http.StatusOK {
		t.Fatalf("save = %d %s", w.Code, w.Body.String())
	}
	s := decode[models.InstructorSettings](t, w)
	if s.RefundWindowHours == nil || *s.RefundWindowHours != 48 || !s.NotifySMS {
		t.Fatalf("settings = %+v", s)
	}
}

func TestAuditLogs(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodGet, "/api/me/audit-logs?action=coaching_created&page=0&limit=500", a.token(a.instructor, "instructor"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("audit = %d %s", w.Code, w.Body.String())
	}
	if a.audit.instructorID != a.instructor.ID || a.audit.filter.Action != "coaching_created" {
		t.Fatalf("filter = %+v", a.audit.filter)
	}
	if a.audit.filter.Page != 1 || a.audit.filter.Limit != 50 {
		t.Fatalf("paging = %+v", a.audit.filter)
	}
}

func TestSelectInitialRoleReissuesToken(t *testing.T) {
	a := newApp(t)
	u := a.store.SeedUser(models.User{Email: "fresh@example.com", Name: "새사용자"})

	w := a.do(http.MethodPost, "/api/me/roles/initial", a.token(u, ""), map[string]string{"role": "instructor"})
	if w.Code != http.StatusOK {
		t.Fatalf("select = %d %s", w.Code, w.Body.String())
	}
	res := decode[struct {
		Token string
		Roles struct {
			Primary string `json:"primary_role"`
		}
	}](t, w)
	if res.Token == "" || res.Roles.Primary != "instructor" {
		t.Fatalf("response = %+v", res)
	}
}
