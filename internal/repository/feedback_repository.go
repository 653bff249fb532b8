package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

// FeedbackRepository manages feedback entries.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback entry. A second entry by the same author for the
// same job violates feedback_author_job_key.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	fb.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO feedback (id, author_user_id, author_role, target_type, target_company_user_id, target_college_name, target_college_key, job_posting_id, subject, message, rating, created_at) VALUES (:id, :author_user_id, :author_role, :target_type, :target_company_user_id, :target_college_name, :target_college_key, :job_posting_id, :subject, :message, :rating, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// ExistsForAuthorJob reports whether the author already left feedback for the job.
func (r *FeedbackRepository) ExistsForAuthorJob(ctx context.Context, authorUserID, jobID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM feedback WHERE author_user_id = $1 AND job_posting_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, authorUserID, jobID); err != nil {
		return false, fmt.Errorf("check feedback: %w", err)
	}
	return exists, nil
}

// ListJobIDsByAuthor returns the jobs the author has already reviewed.
func (r *FeedbackRepository) ListJobIDsByAuthor(ctx context.Context, authorUserID string) ([]string, error) {
	const query = `SELECT job_posting_id FROM feedback WHERE author_user_id = $1 AND job_posting_id IS NOT NULL`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, authorUserID); err != nil {
		return nil, fmt.Errorf("list reviewed jobs: %w", err)
	}
	return ids, nil
}

// List returns feedback matching the filter, newest first.
func (r *FeedbackRepository) List(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackView, error) {
	builder := psql.Select(
		"f.id", "f.author_user_id", "f.author_role", "f.target_type", "f.target_company_user_id",
		"f.target_college_name", "f.target_college_key", "f.job_posting_id", "f.subject", "f.message",
		"f.rating", "f.created_at",
		"TRIM(u.first_name || ' ' || u.last_name) AS author_name",
		"j.title AS job_title",
	).
		From("feedback f").
		Join("users u ON u.id = f.author_user_id").
		LeftJoin("job_postings j ON j.id = f.job_posting_id").
		OrderBy("f.created_at DESC")

	if filter.TargetCompanyUserID != "" {
		builder = builder.Where(squirrel.Eq{"f.target_type": models.FeedbackTargetCompany, "f.target_company_user_id": filter.TargetCompanyUserID})
	}
	if filter.TargetCollegeKey != "" {
		builder = builder.Where(squirrel.Eq{"f.target_type": models.FeedbackTargetCollege, "f.target_college_key": filter.TargetCollegeKey})
	}
	if filter.JobPostingID != "" {
		builder = builder.Where(squirrel.Eq{"f.job_posting_id": filter.JobPostingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feedback query: %w", err)
	}
	var views []models.FeedbackView
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return views, nil
}
