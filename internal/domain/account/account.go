package account

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/models"
)

type UserRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpsertUserByEmail inserts u or refreshes google_sub of the row with
	// the same email, returning the stored row.
	UpsertUserByEmail(ctx context.Context, u *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, instructorID uuid.UUID) (*models.InstructorSettings, error)
	SaveSettings(ctx context.Context, s *models.InstructorSettings) error

	GetGoogleConnection(ctx context.Context, userID uuid.UUID) (*models.GoogleConnection, error)
	SaveGoogleConnection(ctx context.Context, c *models.GoogleConnection) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is what the identity provider asserts about a signed-in user.
type Identity struct {
	Subject string
	Email   string
	Name    string

	// RefreshToken is only present when offline calendar access was granted.
	RefreshToken  string
	CalendarScope bool
}

type IdentityProvider interface {
	AuthURL(state string) string
	// Exchange trades an authorization code for a verified identity.
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// StateStore keeps one-time OAuth state values.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume reports whether state existed, removing it.
	Consume(ctx context.Context, state string) (bool, error)
}

type TokenSealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// ImageUploader normalises and stores a profile image, returning its public URL.
type ImageUploader interface {
	UploadProfileImage(ctx context.Context, userID uuid.UUID, r io.Reader) (string, error)
}

// ErrInvalidImage is returned by ImageUploader when the payload is not a
// decodable image.
var ErrInvalidImage = errors.New("invalid image")
