package invitation

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
	"github.com/yeyakmania/booking-api/internal/validators"
)

const codeAttempts = 5

type CreateInput struct {
	ActorID            uuid.UUID
	CoachingID         uuid.UUID
	Email              string
	PackageTemplateIDs []uuid.UUID
}

type CreateInvitation struct {
	deps usecase.Deps
}

func NewCreateInvitation(deps usecase.Deps) *CreateInvitation {
	return &CreateInvitation{deps: deps}
}

// Execute issues an invitation, reusing the pending one for the same
// coaching and email while it has not expired.
func (uc *CreateInvitation) Execute(ctx context.Context, in CreateInput) (*models.Invitation, error) {
	email, err := validators.NormalizedEmail(in.Email)
	if err != nil {
		return nil, err
	}

	repos := uc.deps.Store.Repos()

	coaching, err := repos.Coachings.GetCoaching(ctx, in.CoachingID)
	if err != nil {
		return nil, err
	}
	if coaching.InstructorID != in.ActorID {
		return nil, httperr.NotFoundErr("coaching_not_found")
	}

	templateIDs := make(pq.StringArray, 0, len(in.PackageTemplateIDs))
	for _, id := range in.PackageTemplateIDs {
		tpl, err := repos.Credits.GetTemplate(ctx, id)
		if err != nil {
			return nil, err
		}
		if tpl.InstructorID != in.ActorID {
			return nil, httperr.NotFoundErr("template_not_found")
		}
		templateIDs = append(templateIDs, id.String())
	}

	now := uc.deps.Clock()
	existing, err := repos.Invitations.FindPending(ctx, in.CoachingID, email, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	inv := &models.Invitation{
		Email:              email,
		CoachingID:         coaching.ID,
		InstructorID:       coaching.InstructorID,
		PackageTemplateIDs: templateIDs,
		Status:             models.InvitationPending,
		ExpiresAt:          now.Add(domain.Validity),
	}

	// A colliding code surfaces as a duplicate_entry conflict; try another.
	for attempt := 0; ; attempt++ {
		if attempt == codeAttempts {
			return nil, httperr.Conflict("invitation_code_exhausted")
		}
		code, err := domain.GenerateCode()
		if err != nil {
			return nil, err
		}
		inv.InvitationCode = code

		err = repos.Invitations.CreateInvitation(ctx, inv)
		if err == nil {
			break
		}
		if !httperr.IsBusiness(err, "duplicate_entry") {
			return nil, err
		}
	}

	uc.deps.Publish(ctx, events.TopicInvitationCreated, events.InvitationEvent{
		InvitationID:  inv.ID,
		InstructorID:  inv.InstructorID,
		Email:         inv.Email,
		Code:          inv.InvitationCode,
		CoachingTitle: coaching.Title,
		ExpiresAt:     inv.ExpiresAt,
	})

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: inv.InstructorID,
		ActorID:      &in.ActorID,
		Action:       "invitation_created",
		Entity:       "invitation",
		EntityID:     &inv.ID,
		Metadata:     map[string]string{"email": inv.Email},
	})

	return inv, nil
}

func (uc *CreateInvitation) List(ctx context.Context, instructorID uuid.UUID) ([]models.Invitation, error) {
	return uc.deps.Store.Repos().Invitations.ListInvitations(ctx, instructorID)
}
