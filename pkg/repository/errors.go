package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes mapped by MapError.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// ErrConstraint is returned by MapError for CHECK constraint violations.
var ErrConstraint = errors.New("constraint violation")

// MapError translates driver errors into domain errors: sql.ErrNoRows to
// notFound, a unique violation to duplicate, and a check violation to
// ErrConstraint. Anything else is returned unchanged.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicate
		case pgCheckViolation:
			return errors.Join(ErrConstraint, err)
		}
	}
	return err
}
