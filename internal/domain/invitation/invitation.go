package invitation

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

const (
	// CodeAlphabet leaves out I, O, 0 and 1.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 6
	Validity     = 7 * 24 * time.Hour
)

type Repository interface {
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitationByCode(ctx context.Context, code string) (*models.Invitation, error)
	// FindPending returns the pending invitation still valid at now, or
	// nil, nil when there is none.
	FindPending(ctx context.Context, coachingID uuid.UUID, email string, now time.Time) (*models.Invitation, error)
	// MarkAccepted flips pending to accepted; false when it was not pending.
	MarkAccepted(ctx context.Context, id, studentID uuid.UUID, at time.Time) (bool, error)
	ListInvitations(ctx context.Context, instructorID uuid.UUID) ([]models.Invitation, error)
}

func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = CodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckAcceptable runs the acceptance checks in their fixed order:
// existence, pending, expiry, then email.
func CheckAcceptable(inv *models.Invitation, email string, now time.Time) error {
	if inv == nil {
		return httperr.InvitationInvalid("invitation_not_found")
	}
	if inv.Status != models.InvitationPending {
		return httperr.InvitationInvalid("invitation_used")
	}
	if !now.Before(inv.ExpiresAt) {
		return httperr.InvitationInvalid("invitation_expired")
	}
	if account.NormalizeEmail(email) != account.NormalizeEmail(inv.Email) {
		return httperr.InvitationInvalid("invitation_email_mismatch")
	}
	return nil
}
