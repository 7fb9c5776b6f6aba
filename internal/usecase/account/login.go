package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	domain "github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/domain/role"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

const StateTTL = 10 * time.Minute

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Roles role.Set     `json:"roles"`

	// NeedsRole is true until the user picks an initial role.
	NeedsRole      bool `json:"needs_role"`
	CalendarLinked bool `json:"calendar_linked"`
}

type GoogleLogin struct {
	deps     usecase.Deps
	provider domain.IdentityProvider
	states   domain.StateStore
	sealer   domain.TokenSealer
	tokens   *TokenIssuer
}

func NewGoogleLogin(
	deps usecase.Deps,
	provider domain.IdentityProvider,
	states domain.StateStore,
	sealer domain.TokenSealer,
	tokens *TokenIssuer,
) *GoogleLogin {
	return &GoogleLogin{deps: deps, provider: provider, states: states, sealer: sealer, tokens: tokens}
}

// URL returns the consent page address bound to a fresh one-time state.
func (g *GoogleLogin) URL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := g.states.Save(ctx, state, StateTTL); err != nil {
		return "", err
	}
	return g.provider.AuthURL(state), nil
}

func (g *GoogleLogin) Callback(ctx context.Context, code, state string) (*LoginResult, error) {
	if code == "" || state == "" {
		return nil, httperr.Invalid("invalid_request")
	}

	// --------------------------------------------------
	// One-time state
	// --------------------------------------------------
	ok, err := g.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.Invalid("invalid_oauth_state")
	}

	// --------------------------------------------------
	// Code exchange + ID token
	// --------------------------------------------------
	octx, cancel := g.deps.Outbound(ctx)
	defer cancel()

	identity, err := g.provider.Exchange(octx, code)
	if err != nil {
		if httperr.KindOf(err) != 0 {
			return nil, err
		}
		g.deps.Log().Warn("google code exchange failed", "error", err)
		return nil, httperr.External("oauth_exchange_failed")
	}
	email := domain.NormalizeEmail(identity.Email)
	if email == "" {
		return nil, httperr.Invalid("invalid_id_token")
	}

	repos := g.deps.Store.Repos()

	name := identity.Name
	if name == "" {
		name = email
	}
	user, err := repos.Users.UpsertUserByEmail(ctx, &models.User{
		Email:     email,
		Name:      name,
		GoogleSub: identity.Subject,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Calendar grant
	// --------------------------------------------------
	linked := false
	if identity.RefreshToken != "" && identity.CalendarScope {
		if err := g.saveConnection(ctx, user.ID, email, identity.RefreshToken); err != nil {
			return nil, err
		}
		linked = true
	} else if _, err := repos.Settings.GetGoogleConnection(ctx, user.ID); err == nil {
		linked = true
	}

	roles, err := repos.Roles.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	set := role.Resolve(roles)

	token, err := g.tokens.Issue(user, set.Primary)
	if err != nil {
		return nil, err
	}

	if set.Has(models.RoleInstructor) {
		g.deps.Audit.Dispatch(audit.Event{
			InstructorID: user.ID,
			ActorID:      &user.ID,
			Action:       "signed_in",
			Entity:       "user",
			EntityID:     &user.ID,
		})
	}

	return &LoginResult{
		Token:          token,
		User:           user,
		Roles:          set,
		NeedsRole:      set.Primary == "",
		CalendarLinked: linked,
	}, nil
}

func (g *GoogleLogin) saveConnection(ctx context.Context, userID uuid.UUID, email, refreshToken string) error {
	sealed, err := g.sealer.Seal([]byte(refreshToken))
	if err != nil {
		return err
	}

	conn := &models.GoogleConnection{
		UserID:                userID,
		GoogleEmail:           email,
		EncryptedRefreshToken: sealed,
		CalendarID:            "primary",
		CalendarScope:         true,
		ConnectedAt:           g.deps.Clock(),
	}
	if existing, err := g.deps.Store.Repos().Settings.GetGoogleConnection(ctx, userID); err == nil && existing.CalendarID != "" {
		conn.CalendarID = existing.CalendarID
	}
	return g.deps.Store.Repos().Settings.SaveGoogleConnection(ctx, conn)
}
