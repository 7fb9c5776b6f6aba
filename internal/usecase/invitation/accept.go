package invitation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/domain/credit"
	domain "github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type AcceptInput struct {
	Code         string
	StudentID    uuid.UUID
	StudentEmail string
}

type AcceptInvitation struct {
	deps usecase.Deps
}

func NewAcceptInvitation(deps usecase.Deps) *AcceptInvitation {
	return &AcceptInvitation{deps: deps}
}

// Execute binds the student to the inviting instructor and returns the
// instructor. The relation, role and acceptance share one transaction, so
// a failure there leaves the invitation pending and retryable. Package
// provisioning is best-effort per template.
func (uc *AcceptInvitation) Execute(ctx context.Context, in AcceptInput) (*models.User, error) {
	repos := uc.deps.Store.Repos()
	now := uc.deps.Clock()

	inv, err := repos.Invitations.GetInvitationByCode(ctx, domain.NormalizeCode(in.Code))
	if err != nil && !httperr.IsKind(err, httperr.KindNotFound) {
		return nil, err
	}
	if err := domain.CheckAcceptable(inv, in.StudentEmail, now); err != nil {
		return nil, err
	}

	instructor, err := repos.Users.GetUser(ctx, inv.InstructorID)
	if err != nil {
		return nil, err
	}

	var provisioned []uuid.UUID
	err = uc.deps.Store.WithTx(ctx, func(tx store.Repos) error {
		coachingID := inv.CoachingID
		if err := tx.Roster.EnsureLink(ctx, &models.StudentInstructor{
			StudentID:    in.StudentID,
			InstructorID: inv.InstructorID,
			CoachingID:   &coachingID,
		}); err != nil {
			return err
		}
		if err := tx.Roles.AddRole(ctx, in.StudentID, models.RoleStudent); err != nil {
			return err
		}

		provisioned = uc.provision(ctx, tx, inv, in.StudentID, now)

		ok, err := tx.Invitations.MarkAccepted(ctx, inv.ID, in.StudentID, now)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.InvitationInvalid("invitation_used")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		InstructorID: inv.InstructorID,
		ActorID:      &in.StudentID,
		Action:       "invitation_accepted",
		Entity:       "invitation",
		EntityID:     &inv.ID,
		Metadata:     map[string]any{"packages": provisioned},
	})

	return instructor, nil
}

// provision creates one package per listed template, each in its own
// savepoint. A template that cannot be provisioned is logged and skipped
// without touching the relation or the other packages.
func (uc *AcceptInvitation) provision(ctx context.Context, tx store.Repos, inv *models.Invitation, studentID uuid.UUID, now time.Time) []uuid.UUID {
	var ids []uuid.UUID
	for _, raw := range inv.PackageTemplateIDs {
		log := uc.deps.Log().With("invitation_id", inv.ID, "template_id", raw)

		templateID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("skipping malformed package template id")
			continue
		}

		var created *models.Package
		err = tx.Savepoint(ctx, func(sp store.Repos) error {
			tpl, err := sp.Credits.GetTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			if tpl.InstructorID != inv.InstructorID || !tpl.IsActive {
				log.Warn("skipping unusable package template", "active", tpl.IsActive)
				return nil
			}

			p := credit.FromTemplate(tpl, studentID, now)
			if tpl.CoachingID == nil {
				coachingID := inv.CoachingID
				p.CoachingID = &coachingID
			}
			if err := sp.Credits.CreatePackage(ctx, p); err != nil {
				return err
			}
			created = p
			return nil
		})
		if err != nil {
			log.Warn("skipping package template", "error", err)
			continue
		}
		if created != nil {
			ids = append(ids, created.ID)
		}
	}
	return ids
}
