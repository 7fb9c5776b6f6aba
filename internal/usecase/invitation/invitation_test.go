package invitation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/testfixtures"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type fixture struct {
	store      *testfixtures.MemStore
	pub        *testfixtures.Recorder
	clock      *testfixtures.Clock
	deps       usecase.Deps
	instructor models.User
	student    models.User
	coaching   models.Coaching
	template   models.PackageTemplate
}

func newFixture() *fixture {
	s := testfixtures.NewMemStore()
	f := &fixture{
		store: s,
		pub:   &testfixtures.Recorder{},
		clock: testfixtures.NewClock(time.Time{}),
	}
	f.deps = usecase.Deps{Store: s, Events: f.pub, Logger: testfixtures.Logger(), Now: f.clock.Now}
	f.instructor = s.SeedUser(models.User{Email: "coach@example.com", Name: "김코치", StudioName: "코어 스튜디오"}, models.RoleInstructor, models.RoleStudent)
	f.student = s.SeedUser(models.User{Email: "student@example.com", Name: "이학생"})
	f.coaching = s.SeedCoaching(models.Coaching{InstructorID: f.instructor.ID, Title: "필라테스", Slug: "필라테스", Duration: 50, IsActive: true})
	f.template = s.SeedTemplate(models.PackageTemplate{InstructorID: f.instructor.ID, Name: "10-pack", TotalSessions: 10, ValidityDays: 30, IsActive: true})
	return f
}

func (f *fixture) invite(t *testing.T, email string, templates ...uuid.UUID) *models.Invitation {
	t.Helper()
	inv, err := NewCreateInvitation(f.deps).Execute(context.Background(), CreateInput{
		ActorID:            f.instructor.ID,
		CoachingID:         f.coaching.ID,
		Email:              email,
		PackageTemplateIDs: templates,
	})
	if err != nil {
		t.Fatalf("create invitation: %v", err)
	}
	return inv
}

func TestCreateReusesPendingInvitation(t *testing.T) {
	f := newFixture()

	first := f.invite(t, "Student@Example.com")
	if first.Email != "student@example.com" {
		t.Fatalf("email not normalized: %q", first.Email)
	}
	if len(first.InvitationCode) != domain.CodeLength {
		t.Fatalf("code = %q", first.InvitationCode)
	}
	if !first.ExpiresAt.Equal(f.clock.Now().Add(7 * 24 * time.Hour)) {
		t.Fatalf("expires_at = %v", first.ExpiresAt)
	}

	second := f.invite(t, "student@example.com")
	if second.ID != first.ID || second.InvitationCode != first.InvitationCode {
		t.Fatal("pending invitation should be reused")
	}
	if n := len(f.pub.Topics()); n != 1 || f.pub.Topics()[0] != events.TopicInvitationCreated {
		t.Fatalf("expected exactly one invitation event, got %v", f.pub.Topics())
	}
}

func TestCreateReplacesExpiredInvitation(t *testing.T) {
	f := newFixture()
	first := f.invite(t, f.student.Email)

	f.clock.Advance(domain.Validity + 24*time.Hour)
	second := f.invite(t, f.student.Email)
	if second.ID == first.ID || second.InvitationCode == first.InvitationCode {
		t.Fatal("expired invitation was reused")
	}
	if !second.ExpiresAt.After(f.clock.Now()) {
		t.Fatalf("expires_at = %s", second.ExpiresAt)
	}

	in := AcceptInput{Code: second.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email}
	if _, err := NewAcceptInvitation(f.deps).Execute(context.Background(), in); err != nil {
		t.Fatalf("accept: %v", err)
	}
}

func TestCreateChecksOwnershipAndEmail(t *testing.T) {
	f := newFixture()
	uc := NewCreateInvitation(f.deps)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateInput{ActorID: uuid.New(), CoachingID: f.coaching.ID, Email: "a@example.com"})
	if !httperr.IsBusiness(err, "coaching_not_found") {
		t.Fatalf("expected coaching_not_found, got %v", err)
	}
	_, err = uc.Execute(ctx, CreateInput{ActorID: f.instructor.ID, CoachingID: f.coaching.ID, Email: "not-an-email"})
	if !httperr.IsBusiness(err, "invalid_email") {
		t.Fatalf("expected invalid_email, got %v", err)
	}
	foreign := f.store.SeedTemplate(models.PackageTemplate{InstructorID: uuid.New(), Name: "x", TotalSessions: 1, ValidityDays: 1})
	_, err = uc.Execute(ctx, CreateInput{ActorID: f.instructor.ID, CoachingID: f.coaching.ID, Email: "a@example.com", PackageTemplateIDs: []uuid.UUID{foreign.ID}})
	if !httperr.IsBusiness(err, "template_not_found") {
		t.Fatalf("expected template_not_found, got %v", err)
	}
}

func TestAcceptProvisionsTemplatePackage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv := f.invite(t, f.student.Email, f.template.ID)

	acceptedAt := f.clock.Advance(2 * time.Hour)
	instructor, err := NewAcceptInvitation(f.deps).Execute(ctx, AcceptInput{
		Code:         strings.ToLower(inv.InvitationCode),
		StudentID:    f.student.ID,
		StudentEmail: "STUDENT@example.com",
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if instructor.ID != f.instructor.ID {
		t.Fatalf("returned instructor %v", instructor.ID)
	}

	pkgs := f.store.Packages()
	if len(pkgs) != 1 {
		t.Fatalf("expected one package, got %d", len(pkgs))
	}
	p := pkgs[0]
	if p.StudentID != f.student.ID || p.TotalSessions != 10 || p.RemainingSessions != 10 {
		t.Fatalf("package = %+v", p)
	}
	if !p.ExpiresAt.Equal(acceptedAt.AddDate(0, 0, 30)) {
		t.Fatalf("expires_at = %v, want %v", p.ExpiresAt, acceptedAt.AddDate(0, 0, 30))
	}

	roles, _ := f.store.ListRoles(ctx, f.student.ID)
	if len(roles) != 1 || roles[0] != models.RoleStudent {
		t.Fatalf("roles = %v", roles)
	}

	stored, _ := f.store.GetInvitationByCode(ctx, inv.InvitationCode)
	if stored.Status != models.InvitationAccepted || stored.AcceptedBy == nil || *stored.AcceptedBy != f.student.ID {
		t.Fatalf("invitation = %+v", stored)
	}
}

func TestAcceptIsSingleUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv := f.invite(t, f.student.Email)
	uc := NewAcceptInvitation(f.deps)

	in := AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email}
	if _, err := uc.Execute(ctx, in); err != nil {
		t.Fatalf("accept: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := uc.Execute(ctx, in); !httperr.IsBusiness(err, "invitation_used") {
			t.Fatalf("retry %d: expected invitation_used, got %v", i, err)
		}
	}
	if n := len(f.store.Links()); n != 1 {
		t.Fatalf("expected one student-instructor link, got %d", n)
	}
}

func TestAcceptFailureOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	uc := NewAcceptInvitation(f.deps)

	if _, err := uc.Execute(ctx, AcceptInput{Code: "ZZZZZZ", StudentID: f.student.ID, StudentEmail: f.student.Email}); !httperr.IsBusiness(err, "invitation_not_found") {
		t.Fatalf("expected invitation_not_found, got %v", err)
	}

	inv := f.invite(t, f.student.Email)
	if _, err := uc.Execute(ctx, AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: "other@example.com"}); !httperr.IsBusiness(err, "invitation_email_mismatch") {
		t.Fatalf("expected invitation_email_mismatch, got %v", err)
	}

	f.clock.Advance(domain.Validity)
	if _, err := uc.Execute(ctx, AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: "other@example.com"}); !httperr.IsBusiness(err, "invitation_expired") {
		t.Fatalf("expected invitation_expired before the email check, got %v", err)
	}
}

func TestAcceptReportsUsedBeforeExpired(t *testing.T) {
	f := newFixture()
	at := f.clock.Now().Add(-10 * 24 * time.Hour)
	inv := f.store.SeedInvitation(models.Invitation{
		Email:          f.student.Email,
		InvitationCode: "ABC234",
		CoachingID:     f.coaching.ID,
		InstructorID:   f.instructor.ID,
		Status:         models.InvitationAccepted,
		ExpiresAt:      at.Add(domain.Validity),
		AcceptedAt:     &at,
	})

	in := AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email}
	if _, err := NewAcceptInvitation(f.deps).Execute(context.Background(), in); !httperr.IsBusiness(err, "invitation_used") {
		t.Fatalf("expected invitation_used, got %v", err)
	}
}

func TestAcceptFailureLeavesInvitationPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv := f.invite(t, f.student.Email, f.template.ID)
	uc := NewAcceptInvitation(f.deps)

	f.store.FailOn["MarkAccepted"] = errors.New("connection reset")
	in := AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email}
	if _, err := uc.Execute(ctx, in); err == nil {
		t.Fatal("expected failure")
	}
	if len(f.store.Packages()) != 0 || len(f.store.Links()) != 0 {
		t.Fatal("partial acceptance was not rolled back")
	}

	if _, err := uc.Execute(ctx, in); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(f.store.Packages()) != 1 || len(f.store.Links()) != 1 {
		t.Fatalf("retry did not provision: %d packages, %d links", len(f.store.Packages()), len(f.store.Links()))
	}
}

func TestAcceptSkipsUnusableTemplates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inactive := f.store.SeedTemplate(models.PackageTemplate{InstructorID: f.instructor.ID, Name: "old", TotalSessions: 4, ValidityDays: 10})
	inv := f.invite(t, f.student.Email, f.template.ID, inactive.ID)
	if err := f.store.DeleteTemplate(ctx, f.template.ID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}

	if _, err := NewAcceptInvitation(f.deps).Execute(ctx, AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if n := len(f.store.Packages()); n != 0 {
		t.Fatalf("expected no packages, got %d", n)
	}
}

func TestAcceptKeepsGoingWhenOnePackageFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	second := f.store.SeedTemplate(models.PackageTemplate{InstructorID: f.instructor.ID, Name: "5-pack", TotalSessions: 5, ValidityDays: 14, IsActive: true})
	inv := f.invite(t, f.student.Email, f.template.ID, second.ID)

	f.store.FailOn["CreatePackage"] = errors.New("insert failed")
	instructor, err := NewAcceptInvitation(f.deps).Execute(ctx, AcceptInput{Code: inv.InvitationCode, StudentID: f.student.ID, StudentEmail: f.student.Email})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if instructor.ID != f.instructor.ID {
		t.Fatalf("instructor = %s", instructor.ID)
	}

	pkgs := f.store.Packages()
	if len(pkgs) != 1 || pkgs[0].TemplateID == nil || *pkgs[0].TemplateID != second.ID {
		t.Fatalf("packages = %+v, want only the second template", pkgs)
	}
	if n := len(f.store.Links()); n != 1 {
		t.Fatalf("links = %d, want 1", n)
	}
	stored, err := f.store.GetInvitationByCode(ctx, inv.InvitationCode)
	if err != nil || stored.Status != models.InvitationAccepted {
		t.Fatalf("invitation = %+v, %v", stored, err)
	}
}

func TestLookup(t *testing.T) {
	f := newFixture()
	inv := f.invite(t, f.student.Email)

	got, err := NewLookupInvitation(f.deps).Execute(context.Background(), inv.InvitationCode)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.CoachingTitle != "필라테스" || got.InstructorName != "김코치" || got.Expired {
		t.Fatalf("lookup = %+v", got)
	}
	if _, err := NewLookupInvitation(f.deps).Execute(context.Background(), "NOPE22"); !httperr.IsKind(err, httperr.KindInvitationInvalid) {
		t.Fatalf("expected invitation invalid, got %v", err)
	}
}
