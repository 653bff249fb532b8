package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

var jobSelectColumns = []string{
	"j.id", "j.company_user_id", "j.title", "j.description", "j.type", "j.college_name", "j.college_key",
	"j.location", "j.duration", "j.compensation", "j.minimum_cpi", "j.google_form_url", "j.apply_by",
	"j.created_at", "j.updated_at",
	"COALESCE(c.name, '') AS company_name",
	"(SELECT COUNT(*) FROM applications a WHERE a.job_posting_id = j.id) AS application_count",
}

// JobRepository manages job postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return psql.Select(jobSelectColumns...).
		From("job_postings j").
		LeftJoin("companies c ON c.user_id = j.company_user_id")
}

// Create inserts a new posting.
func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	const query = `INSERT INTO job_postings (id, company_user_id, title, description, type, college_name, college_key, location, duration, compensation, minimum_cpi, google_form_url, apply_by, created_at, updated_at) VALUES (:id, :company_user_id, :title, :description, :type, :college_name, :college_key, :location, :duration, :compensation, :minimum_cpi, :google_form_url, :apply_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// FindByID returns the posting with its company name.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.JobWithCompany, error) {
	query, args, err := r.selectJobs().Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build job query: %w", err)
	}
	var job models.JobWithCompany
	if err := r.db.GetContext(ctx, &job, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// ListByCollegeScope returns postings targeted at the college key or at every
// college, newest first.
func (r *JobRepository) ListByCollegeScope(ctx context.Context, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error) {
	builder := r.selectJobs().
		Where(squirrel.Eq{"j.college_key": []string{collegeKey, allCollegesKey}}).
		OrderBy("j.created_at DESC")
	return r.list(ctx, builder)
}

// ListByCompany returns the company's own postings, newest first.
func (r *JobRepository) ListByCompany(ctx context.Context, companyUserID string) ([]models.JobWithCompany, error) {
	builder := r.selectJobs().
		Where(squirrel.Eq{"j.company_user_id": companyUserID}).
		OrderBy("j.created_at DESC")
	return r.list(ctx, builder)
}

// ListByCompanyForCollege returns a company's postings visible to one college.
func (r *JobRepository) ListByCompanyForCollege(ctx context.Context, companyUserID, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error) {
	builder := r.selectJobs().
		Where(squirrel.Eq{"j.company_user_id": companyUserID}).
		Where(squirrel.Eq{"j.college_key": []string{collegeKey, allCollegesKey}}).
		OrderBy("j.created_at DESC")
	return r.list(ctx, builder)
}

func (r *JobRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]models.JobWithCompany, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build job list query: %w", err)
	}
	var jobs []models.JobWithCompany
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Delete removes a posting owned by the company together with its
// applications and announcements. The resume paths of the removed
// applications are returned so stored files can be cleaned up.
func (r *JobRepository) Delete(ctx context.Context, id, companyUserID string) ([]string, error) {
	var resumes []string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var owner string
		if err := tx.GetContext(ctx, &owner, `SELECT company_user_id FROM job_postings WHERE id = $1 FOR UPDATE`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return err
			}
			return fmt.Errorf("lock job: %w", err)
		}
		if owner != companyUserID {
			return sql.ErrNoRows
		}

		if err := tx.SelectContext(ctx, &resumes, `SELECT resume_path FROM applications WHERE job_posting_id = $1 AND resume_path <> ''`, id); err != nil {
			return fmt.Errorf("list job resumes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE job_posting_id = $1`, id); err != nil {
			return fmt.Errorf("delete job applications: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM announcements WHERE job_posting_id = $1`, id); err != nil {
			return fmt.Errorf("delete job announcements: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resumes, nil
}
