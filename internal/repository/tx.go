package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Sentinel errors returned by repositories for conditions services translate
// into domain errors.
var (
	ErrCollegeClaimed   = errors.New("college already claimed")
	ErrHiredElsewhere   = errors.New("student already hired for another job")
	ErrStatusFinal      = errors.New("application status already decided")
	ErrNoStudentProfile = errors.New("student profile missing")
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// withTx runs fn in a transaction, rolling back when fn or the commit fails.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
