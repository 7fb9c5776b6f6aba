package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/httperr"
)

const uniqueViolation = "23505"

// translate converts driver errors into business errors; anything it does not
// recognise is returned unchanged.
func translate(err error, notFoundCode string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr(notFoundCode)
	}
	if isUniqueViolation(err, "") {
		return httperr.Conflict("duplicate_entry")
	}
	return err
}

// isUniqueViolation reports a 23505 error, optionally on a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// mustAffect maps a zero-row update or delete to NotFound.
func mustAffect(res *gorm.DB, notFoundCode string) error {
	if res.Error != nil {
		return translate(res.Error, notFoundCode)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr(notFoundCode)
	}
	return nil
}
