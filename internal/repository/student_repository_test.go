package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

func TestStudentRepositorySavePurgesChat(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE students SET college_name").WillReturnRows(sqlmock.NewRows([]string{"is_approved"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (name_key) DO NOTHING")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM chat_messages WHERE sender_user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	purged, err := repo.Save(context.Background(), &models.Student{UserID: "u1", CollegeName: "Y U", CollegeKey: "y u"}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 3, purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySaveMissingProfile(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE students SET college_name").WillReturnRows(sqlmock.NewRows([]string{"is_approved"}))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), &models.Student{UserID: "ghost"}, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySaveOnlyClearsApprovalOnCollegeChange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("is_approved = CASE WHEN college_name = ? THEN is_approved ELSE FALSE END") + ".*" + regexp.QuoteMeta("RETURNING is_approved")).
		WillReturnRows(sqlmock.NewRows([]string{"is_approved"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (name_key) DO NOTHING")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Loaded before the college approved the student.
	student := &models.Student{UserID: "u1", CollegeName: "X U", CollegeKey: "x u", IsApproved: false}
	_, err := repo.Save(context.Background(), student, false)
	require.NoError(t, err)
	assert.True(t, student.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryApproveRequiresSameCollege(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_approved = TRUE, updated_at = $3 WHERE id = $1 AND college_key = $2")).
		WithArgs("s1", "x u", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Approve(context.Background(), "s1", "x u")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryRosterFiltersDepartment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "student_id", "college_name", "college_key", "department", "year", "cgpa", "skills", "resume_path", "is_approved", "created_at", "updated_at", "first_name", "last_name", "email"}).
		AddRow("s1", "u1", "2026100001", "X U", "x u", "CSE", 3, 8.5, "go", "", true, now, now, "Ada", "L", "ada@example.com")
	mock.ExpectQuery(regexp.QuoteMeta("FROM students s JOIN users u ON u.id = s.user_id WHERE s.college_key = $1 AND LOWER(s.department) = LOWER($2) ORDER BY s.department ASC, s.student_id ASC")).
		WithArgs("x u", "cse").
		WillReturnRows(rows)

	roster, err := repo.Roster(context.Background(), models.StudentRosterFilter{CollegeKey: "x u", Department: "cse"})
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "2026100001", roster[0].StudentID)
	assert.Equal(t, "ada@example.com", roster[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
