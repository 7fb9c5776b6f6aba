package coaching

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/testfixtures"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

func ptr[T any](v T) *T { return &v }

func TestCreateGeneratesUniqueSlugs(t *testing.T) {
	m := NewManager(usecase.Deps{Store: testfixtures.NewMemStore(), Logger: testfixtures.Logger()})
	ctx := context.Background()
	instructor := uuid.New()

	want := []string{"필라테스-1-1", "필라테스-1-1-2", "필라테스-1-1-3"}
	for _, slug := range want {
		c, err := m.Create(ctx, instructor, Input{Title: ptr("필라테스 1:1"), Duration: ptr(50)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if c.Slug != slug {
			t.Fatalf("slug = %q, want %q", c.Slug, slug)
		}
	}

	// Another instructor may reuse the slug.
	other, err := m.Create(ctx, uuid.New(), Input{Title: ptr("필라테스 1:1"), Duration: ptr(50)})
	if err != nil || other.Slug != "필라테스-1-1" {
		t.Fatalf("other instructor slug = %q, %v", other.Slug, err)
	}
}

func TestCreateFallsBackToRandomSlug(t *testing.T) {
	m := NewManager(usecase.Deps{Store: testfixtures.NewMemStore(), Logger: testfixtures.Logger()})

	c, err := m.Create(context.Background(), uuid.New(), Input{Title: ptr("★★★"), Duration: ptr(30)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(c.Slug) != 6 {
		t.Fatalf("expected a 6 character slug, got %q", c.Slug)
	}
}

func TestExplicitSlugMustBeFree(t *testing.T) {
	m := NewManager(usecase.Deps{Store: testfixtures.NewMemStore(), Logger: testfixtures.Logger()})
	ctx := context.Background()
	instructor := uuid.New()

	if _, err := m.Create(ctx, instructor, Input{Title: ptr("PT"), Slug: ptr("pt"), Duration: ptr(60)}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := m.Create(ctx, instructor, Input{Title: ptr("PT 2"), Slug: ptr("PT"), Duration: ptr(60)})
	if !httperr.IsBusiness(err, "slug_taken") {
		t.Fatalf("expected slug_taken, got %v", err)
	}
}

func TestUpdateAndPublicLookup(t *testing.T) {
	m := NewManager(usecase.Deps{Store: testfixtures.NewMemStore(), Logger: testfixtures.Logger()})
	ctx := context.Background()
	instructor := uuid.New()

	c, err := m.Create(ctx, instructor, Input{Title: ptr("Yoga"), Duration: ptr(60)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := schedule.Default()
	bad[1].Blocks = []schedule.Block{{Start: "09:10", End: "10:00"}}
	if _, err := m.Update(ctx, instructor, c.ID, Input{SetWorkingHours: true, WorkingHours: &bad}); !httperr.IsBusiness(err, "invalid_schedule") {
		t.Fatalf("expected invalid_schedule, got %v", err)
	}
	if _, err := m.Update(ctx, uuid.New(), c.ID, Input{Title: ptr("x")}); !httperr.IsBusiness(err, "coaching_not_found") {
		t.Fatalf("expected coaching_not_found, got %v", err)
	}

	if _, err := m.PublicBySlug(ctx, instructor, "yoga"); err != nil {
		t.Fatalf("PublicBySlug: %v", err)
	}
	if _, err := m.Update(ctx, instructor, c.ID, Input{IsActive: ptr(false)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := m.PublicBySlug(ctx, instructor, "yoga"); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("inactive coaching must be hidden, got %v", err)
	}

	if err := m.Delete(ctx, instructor, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, _ := m.List(ctx, instructor, false)
	if len(list) != 0 {
		t.Fatalf("list after delete = %d", len(list))
	}
}
