package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation
// raised by either supported driver. A non-empty constraint narrows the match.
func IsUniqueViolation(err error, constraint ...string) bool {
	if err == nil {
		return false
	}
	want := ""
	if len(constraint) > 0 {
		want = constraint[0]
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return want == "" || pqErr.Constraint == want
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return want == "" || pgErr.ConstraintName == want
	}

	return false
}
