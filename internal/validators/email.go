package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yeyakmania/booking-api/internal/httperr"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// NormalizedEmail validates email and returns it trimmed and lower-cased.
func NormalizedEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email,max=255"); err != nil {
		return "", httperr.Invalid("invalid_email")
	}
	return email, nil
}
