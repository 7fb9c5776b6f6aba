package invitation

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

// PublicInvitation is what the landing page may show before sign-in.
type PublicInvitation struct {
	Code           string    `json:"code"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	ExpiresAt      time.Time `json:"expires_at"`
	Expired        bool      `json:"expired"`
	CoachingID     uuid.UUID `json:"coaching_id"`
	CoachingTitle  string    `json:"coaching_title"`
	InstructorID   uuid.UUID `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	StudioName     string    `json:"studio_name"`
}

type LookupInvitation struct {
	deps usecase.Deps
}

func NewLookupInvitation(deps usecase.Deps) *LookupInvitation {
	return &LookupInvitation{deps: deps}
}

func (uc *LookupInvitation) Execute(ctx context.Context, code string) (*PublicInvitation, error) {
	repos := uc.deps.Store.Repos()

	inv, err := repos.Invitations.GetInvitationByCode(ctx, domain.NormalizeCode(code))
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.InvitationInvalid("invitation_not_found")
		}
		return nil, err
	}

	out := &PublicInvitation{
		Code:         inv.InvitationCode,
		Email:        inv.Email,
		Status:       inv.Status,
		ExpiresAt:    inv.ExpiresAt,
		Expired:      !uc.deps.Clock().Before(inv.ExpiresAt),
		CoachingID:   inv.CoachingID,
		InstructorID: inv.InstructorID,
	}
	if c, err := repos.Coachings.GetCoaching(ctx, inv.CoachingID); err == nil {
		out.CoachingTitle = c.Title
	}
	if u, err := repos.Users.GetUser(ctx, inv.InstructorID); err == nil {
		out.InstructorName = u.Name
		out.StudioName = u.StudioName
	}
	return out, nil
}
