package account

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	domain "github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/domain/role"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
	"github.com/yeyakmania/booking-api/internal/usecase"
)

type ProfileView struct {
	User            *models.User `json:"user"`
	Roles           role.Set     `json:"roles"`
	GoogleConnected bool         `json:"google_connected"`
}

type ProfileInput struct {
	Name       *string
	StudioName *string
	Phone      *string
	Bio        *string
}

type Profile struct {
	deps     usecase.Deps
	uploader domain.ImageUploader
}

// NewProfile accepts a nil uploader; image uploads then fail with
// storage_unavailable.
func NewProfile(deps usecase.Deps, uploader domain.ImageUploader) *Profile {
	return &Profile{deps: deps, uploader: uploader}
}

func (p *Profile) Get(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	repos := p.deps.Store.Repos()

	user, err := repos.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := repos.Roles.ListRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, gerr := repos.Settings.GetGoogleConnection(ctx, userID)
	if gerr != nil && !httperr.IsKind(gerr, httperr.KindNotFound) {
		return nil, gerr
	}

	return &ProfileView{
		User:            user,
		Roles:           role.Resolve(roles),
		GoogleConnected: gerr == nil,
	}, nil
}

func (p *Profile) Update(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.User, error) {
	repos := p.deps.Store.Repos()

	user, err := repos.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.Invalid("missing_name")
		}
		user.Name = name
	}
	if in.StudioName != nil {
		user.StudioName = strings.TrimSpace(*in.StudioName)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	if err := repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *Profile) SetImage(ctx context.Context, userID uuid.UUID, r io.Reader) (*models.User, error) {
	if p.uploader == nil {
		return nil, httperr.External("storage_unavailable")
	}
	repos := p.deps.Store.Repos()

	user, err := repos.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	octx, cancel := p.deps.Outbound(ctx)
	defer cancel()

	url, err := p.uploader.UploadProfileImage(octx, userID, r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImage) {
			return nil, httperr.Invalid("invalid_image")
		}
		p.deps.Log().Warn("profile image upload failed", "user_id", userID, "error", err)
		return nil, httperr.External("upload_failed")
	}

	user.ProfileImageURL = url
	if err := repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
