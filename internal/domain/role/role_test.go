package role

import (
	"testing"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

func TestResolvePrimary(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		primary string
		count   int
	}{
		{name: "none", roles: nil, primary: "", count: 0},
		{name: "student", roles: []string{"student"}, primary: "student", count: 1},
		{name: "both", roles: []string{"student", "instructor"}, primary: "instructor", count: 2},
		{name: "duplicates", roles: []string{"student", "student"}, primary: "student", count: 1},
		{name: "unknown ignored", roles: []string{"admin"}, primary: "", count: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.roles)
			if set.Primary != tt.primary {
				t.Fatalf("primary = %q, want %q", set.Primary, tt.primary)
			}
			if len(set.Roles) != tt.count {
				t.Fatalf("roles = %v, want %d entries", set.Roles, tt.count)
			}
		})
	}
}

func TestInitialRoles(t *testing.T) {
	got, err := InitialRoles(models.RoleInstructor)
	if err != nil {
		t.Fatalf("InitialRoles(instructor): %v", err)
	}
	set := Resolve(got)
	if !set.Has(models.RoleInstructor) || !set.Has(models.RoleStudent) || len(set.Roles) != 2 {
		t.Fatalf("instructor onboarding should yield {instructor, student}, got %v", got)
	}

	got, err = InitialRoles(models.RoleStudent)
	if err != nil || len(got) != 1 || got[0] != models.RoleStudent {
		t.Fatalf("student onboarding should yield {student}, got %v (%v)", got, err)
	}

	if _, err := InitialRoles("admin"); !httperr.IsBusiness(err, "invalid_role") {
		t.Fatalf("expected invalid_role, got %v", err)
	}
}
