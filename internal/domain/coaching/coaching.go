package coaching

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

type Repository interface {
	CreateCoaching(ctx context.Context, c *models.Coaching) error
	GetCoaching(ctx context.Context, id uuid.UUID) (*models.Coaching, error)
	GetCoachingBySlug(ctx context.Context, instructorID uuid.UUID, slug string) (*models.Coaching, error)
	SlugExists(ctx context.Context, instructorID uuid.UUID, slug string, exclude uuid.UUID) (bool, error)
	UpdateCoaching(ctx context.Context, c *models.Coaching) error
	DeleteCoaching(ctx context.Context, id uuid.UUID) error
	ListCoachings(ctx context.Context, instructorID uuid.UUID, activeOnly bool) ([]models.Coaching, error)
}

const maxSlugLen = 60

// Slugify lower-cases title and keeps ASCII letters, digits and Hangul;
// every other run of characters becomes a single dash.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case unicode.Is(unicode.Hangul, r):
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")

	runes := []rune(slug)
	if len(runes) > maxSlugLen {
		slug = strings.Trim(string(runes[:maxSlugLen]), "-")
	}
	return slug
}

// Validate checks the fields every coaching must carry.
func Validate(c *models.Coaching) error {
	if strings.TrimSpace(c.Title) == "" {
		return httperr.Invalid("missing_title")
	}
	if c.Duration <= 0 {
		return httperr.Invalid("invalid_duration")
	}
	if c.Price.IsNegative() {
		return httperr.Invalid("invalid_price")
	}
	if c.Type != models.CoachingPrivate && c.Type != models.CoachingGroup {
		return httperr.Invalid("invalid_coaching_type")
	}
	if wh := c.WorkingHours.Data(); wh != nil {
		if err := wh.Validate(); err != nil {
			return httperr.Invalid("invalid_schedule")
		}
	}
	return nil
}
