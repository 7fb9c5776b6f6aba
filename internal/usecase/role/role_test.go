package role

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/testfixtures"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

func TestSelectInitialReplacesRoles(t *testing.T) {
	s := testfixtures.NewMemStore()
	r := NewResolver(usecase.Deps{Store: s, Logger: testfixtures.Logger()})
	ctx := context.Background()
	u := s.SeedUser(models.User{Email: "a@example.com"}, models.RoleStudent)

	set, err := r.SelectInitial(ctx, u.ID, models.RoleInstructor)
	if err != nil {
		t.Fatalf("SelectInitial: %v", err)
	}
	if !reflect.DeepEqual(set.Roles, []string{"instructor", "student"}) || set.Primary != models.RoleInstructor {
		t.Fatalf("set = %+v", set)
	}

	set, err = r.SelectInitial(ctx, u.ID, models.RoleStudent)
	if err != nil {
		t.Fatalf("SelectInitial: %v", err)
	}
	if !reflect.DeepEqual(set.Roles, []string{"student"}) || set.Primary != models.RoleStudent {
		t.Fatalf("set = %+v", set)
	}

	if _, err := r.SelectInitial(ctx, u.ID, "admin"); !httperr.IsBusiness(err, "invalid_role") {
		t.Fatalf("expected invalid_role, got %v", err)
	}
}

func TestSelectInitialIsAtomic(t *testing.T) {
	s := testfixtures.NewMemStore()
	r := NewResolver(usecase.Deps{Store: s, Logger: testfixtures.Logger()})
	ctx := context.Background()
	u := s.SeedUser(models.User{Email: "a@example.com"}, models.RoleStudent)

	s.FailOn["AddRole"] = errors.New("write failed")
	if _, err := r.SelectInitial(ctx, u.ID, models.RoleInstructor); err == nil {
		t.Fatal("expected failure")
	}

	set, _ := r.Roles(ctx, u.ID)
	if !reflect.DeepEqual(set.Roles, []string{"student"}) {
		t.Fatalf("roles must survive a failed switch, got %v", set.Roles)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s := testfixtures.NewMemStore()
	r := NewResolver(usecase.Deps{Store: s, Logger: testfixtures.Logger()})
	ctx := context.Background()
	u := s.SeedUser(models.User{Email: "a@example.com"})

	empty, _ := r.Roles(ctx, u.ID)
	if empty.Primary != "" || len(empty.Roles) != 0 {
		t.Fatalf("new user has roles %+v", empty)
	}

	for i := 0; i < 2; i++ {
		set, err := r.Add(ctx, u.ID, models.RoleStudent)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if len(set.Roles) != 1 || set.Primary != models.RoleStudent {
			t.Fatalf("set = %+v", set)
		}
	}
}
