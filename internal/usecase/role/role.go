package role

import (
	"context"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/role"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type Resolver struct {
	deps usecase.Deps
}

func NewResolver(deps usecase.Deps) *Resolver {
	return &Resolver{deps: deps}
}

func (r *Resolver) Roles(ctx context.Context, userID uuid.UUID) (domain.Set, error) {
	roles, err := r.deps.Store.Repos().Roles.ListRoles(ctx, userID)
	if err != nil {
		return domain.Set{}, err
	}
	return domain.Resolve(roles), nil
}

// Add grants role; holding it already is not an error.
func (r *Resolver) Add(ctx context.Context, userID uuid.UUID, role string) (domain.Set, error) {
	if !domain.Valid(role) {
		return domain.Set{}, httperr.Invalid("invalid_role")
	}
	if err := r.deps.Store.Repos().Roles.AddRole(ctx, userID, role); err != nil {
		return domain.Set{}, err
	}
	return r.Roles(ctx, userID)
}

// SelectInitial replaces every held role with the onboarding choice.
func (r *Resolver) SelectInitial(ctx context.Context, userID uuid.UUID, selected string) (domain.Set, error) {
	roles, err := domain.InitialRoles(selected)
	if err != nil {
		return domain.Set{}, err
	}

	err = r.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		if err := tx.Roles.ClearRoles(ctx, userID); err != nil {
			return err
		}
		for _, role := range roles {
			if err := tx.Roles.AddRole(ctx, userID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Set{}, err
	}

	if selected == models.RoleInstructor {
		r.deps.Audit.Dispatch(audit.Event{
			InstructorID: userID,
			ActorID:      &userID,
			Action:       "instructor_onboarded",
			Entity:       "user",
			EntityID:     &userID,
		})
	}
	return r.Roles(ctx, userID)
}
