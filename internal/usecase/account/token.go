package account

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yeyakmania/booking-api/internal/models"
)

// TokenIssuer signs the session JWT handed to the frontend.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue embeds the user id as sub together with the primary role, which may
// be empty for a user who has not picked one yet.
func (t *TokenIssuer) Issue(user *models.User, primaryRole string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := t.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  primaryRole,
		"exp":   now.Add(t.ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
