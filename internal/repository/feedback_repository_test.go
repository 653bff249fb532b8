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

func TestFeedbackListForCompanyAndJob(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "author_user_id", "author_role", "target_type", "target_company_user_id", "target_college_name", "target_college_key", "job_posting_id", "subject", "message", "rating", "created_at", "author_name", "job_title"}).
		AddRow("f1", "u1", "STUDENT", "COMPANY", "c1", nil, nil, "j1", "Great", "Smooth process", 5, now, "Ada L", "SRE")
	mock.ExpectQuery(regexp.QuoteMeta("f.target_company_user_id = $1 AND f.target_type = $2") + ".*" + regexp.QuoteMeta("f.job_posting_id = $3 ORDER BY f.created_at DESC")).
		WithArgs("c1", models.FeedbackTargetCompany, "j1").
		WillReturnRows(rows)

	views, err := repo.List(context.Background(), models.FeedbackFilter{TargetCompanyUserID: "c1", JobPostingID: "j1"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 5, views[0].Rating)
	require.NotNil(t, views[0].JobTitle)
	assert.Equal(t, "SRE", *views[0].JobTitle)
	assert.Nil(t, views[0].TargetCollegeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackExistsForAuthorJob(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "j1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForAuthorJob(context.Background(), "u1", "j1")
	require.NoError(t, err)
	assert.True(t, exists)
}
