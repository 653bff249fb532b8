package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/placement-portal-api/pkg/config"
)

func TestIsUniqueViolationPQ(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "applications_job_student_key"})

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(err, "applications_job_student_key"))
	assert.False(t, IsUniqueViolation(err, "students_student_id_key"))
}

func TestIsUniqueViolationPgx(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, IsUniqueViolation(err, "users_email_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestDSNAndDriver(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: config.DriverPgx, Host: "db", Port: 5432, User: "u", Password: "p", Name: "portal", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=portal sslmode=disable", DSN(cfg))
	assert.Equal(t, "pgx", driverName(cfg.Driver))
	assert.Equal(t, "postgres", driverName(config.DriverPostgres))
}
