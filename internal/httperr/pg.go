package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgDuplicateObject    = "42710"
)

// IsExclusionConflict reports whether err is the storage engine rejecting
// an overlapping interval: the bookings exclusion constraint (23P01) or a
// unique index (23505). The losing writer of a concurrent claim lands here.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsDuplicateObject reports whether err is postgres refusing to create an
// object that already exists (42710), the expected outcome when the
// schema bootstrap re-runs against an initialized database.
func IsDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDuplicateObject
	}
	return false
}
