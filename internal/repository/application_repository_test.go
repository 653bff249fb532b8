package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

func expectStudentLock(mock sqlmock.Sqlmock, userID string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE user_id = $1 FOR UPDATE")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s-" + userID))
}

func TestApplicationUpsertInsertsPending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	expectStudentLock(mock, "u1")
	mock.ExpectQuery(regexp.QuoteMeta("AND job_posting_id <> $3")).
		WithArgs("u1", models.ApplicationHired, "j1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (job_posting_id, student_user_id) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "inserted"}).AddRow("a1", "PENDING", now, true))
	mock.ExpectCommit()

	app := &models.Application{JobPostingID: "j1", StudentUserID: "u1", TermsAccepted: true}
	created, err := repo.Upsert(context.Background(), app)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "a1", app.ID)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpsertKeepsDecidedStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	expectStudentLock(mock, "u1")
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("ON CONFLICT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "inserted"}).AddRow("a-existing", "REJECTED", now, false))
	mock.ExpectCommit()

	app := &models.Application{JobPostingID: "j1", StudentUserID: "u1"}
	created, err := repo.Upsert(context.Background(), app)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a-existing", app.ID)
	assert.Equal(t, models.ApplicationRejected, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpsertHiredElsewhere(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	expectStudentLock(mock, "u1")
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), &models.Application{JobPostingID: "j2", StudentUserID: "u1"})
	assert.ErrorIs(t, err, ErrHiredElsewhere)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpsertWithoutProfile(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), &models.Application{JobPostingID: "j2", StudentUserID: "ghost"})
	assert.ErrorIs(t, err, ErrNoStudentProfile)
}

func TestApplicationUpdateStatusAlreadyDecided(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	expectStudentLock(mock, "u1")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE applications SET status = $2")).
		WithArgs("a1", models.ApplicationRejected, sqlmock.AnyArg(), models.ApplicationPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), "a1", "u1", models.ApplicationRejected)
	assert.ErrorIs(t, err, ErrStatusFinal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatusHire(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	expectStudentLock(mock, "u1")
	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $3")).
		WithArgs("u1", models.ApplicationHired, "a1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE applications SET status = $2")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_posting_id", "student_user_id", "applicant_name", "applicant_email", "college_id", "linkedin_url", "github_url", "gender", "cover_letter", "resume_path", "terms_accepted", "status", "created_at", "updated_at"}).
			AddRow("a1", "j1", "u1", "Ada", "ada@example.com", "C1", "", "", "F", "hi", "", true, "HIRED", now, now))
	mock.ExpectCommit()

	app, err := repo.UpdateStatus(context.Background(), "a1", "u1", models.ApplicationHired)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationHired, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
