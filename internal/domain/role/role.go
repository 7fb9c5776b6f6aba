package role

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

type Set struct {
	Roles   []string `json:"roles"`
	Primary string   `json:"primary_role"`
}

func (s Set) Has(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func Valid(role string) bool {
	return role == models.RoleInstructor || role == models.RoleStudent
}

// Resolve dedupes roles and picks the primary one: instructor when held,
// else student, else none.
func Resolve(roles []string) Set {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok || !Valid(r) {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)

	set := Set{Roles: out}
	switch {
	case set.Has(models.RoleInstructor):
		set.Primary = models.RoleInstructor
	case set.Has(models.RoleStudent):
		set.Primary = models.RoleStudent
	}
	return set
}

// InitialRoles is the exact role set an onboarding choice produces.
// Instructors can always book as students too.
func InitialRoles(selected string) ([]string, error) {
	switch selected {
	case models.RoleInstructor:
		return []string{models.RoleInstructor, models.RoleStudent}, nil
	case models.RoleStudent:
		return []string{models.RoleStudent}, nil
	default:
		return nil, httperr.Invalid("invalid_role")
	}
}

type Repository interface {
	ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
	// AddRole is a no-op when the role is already held.
	AddRole(ctx context.Context, userID uuid.UUID, role string) error
	ClearRoles(ctx context.Context, userID uuid.UUID) error
}
