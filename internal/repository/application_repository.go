package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

const applicationColumns = `id, job_posting_id, student_user_id, applicant_name, applicant_email, college_id, linkedin_url, github_url, gender, cover_letter, resume_path, terms_accepted, status, created_at, updated_at`

const applicationDetailQuery = `SELECT a.id, a.job_posting_id, a.student_user_id, a.applicant_name, a.applicant_email, a.college_id, a.linkedin_url, a.github_url, a.gender, a.cover_letter, a.resume_path, a.terms_accepted, a.status, a.created_at, a.updated_at,
	j.title AS job_title, j.company_user_id,
	COALESCE(s.student_id, '') AS student_number, COALESCE(s.department, '') AS department, COALESCE(s.year, 0) AS year, COALESCE(s.cgpa, 0) AS cgpa, COALESCE(s.college_name, '') AS college_name
FROM applications a
JOIN job_postings j ON j.id = a.job_posting_id
LEFT JOIN students s ON s.user_id = a.student_user_id`

// ApplicationRepository manages job applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindDetail returns an application joined with its job and student.
func (r *ApplicationRepository) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	query := applicationDetailQuery + ` WHERE a.id = $1`
	var detail models.ApplicationDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &detail, nil
}

// ListByStudent returns every application submitted by the student.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE student_user_id = $1 ORDER BY created_at DESC`
	var apps []models.Application
	if err := r.db.SelectContext(ctx, &apps, query, studentUserID); err != nil {
		return nil, fmt.Errorf("list student applications: %w", err)
	}
	return apps, nil
}

// ListByJob returns the applications to a job with student details.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.ApplicationDetail, error) {
	query := applicationDetailQuery + ` WHERE a.job_posting_id = $1 ORDER BY a.created_at DESC`
	var details []models.ApplicationDetail
	if err := r.db.SelectContext(ctx, &details, query, jobID); err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return details, nil
}

// Upsert creates a pending application or updates the applicant fields of the
// existing one for the same (job, student) pair. The status is never changed.
// The student row is locked so a concurrent hire cannot slip past the hire
// lock check. created reports whether a new row was inserted.
func (r *ApplicationRepository) Upsert(ctx context.Context, app *models.Application) (bool, error) {
	var created bool
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockStudent(ctx, tx, app.StudentUserID); err != nil {
			return err
		}

		var hired bool
		const hiredQuery = `SELECT EXISTS (SELECT 1 FROM applications WHERE student_user_id = $1 AND status = $2 AND job_posting_id <> $3)`
		if err := tx.GetContext(ctx, &hired, hiredQuery, app.StudentUserID, models.ApplicationHired, app.JobPostingID); err != nil {
			return fmt.Errorf("check hire lock: %w", err)
		}
		if hired {
			return ErrHiredElsewhere
		}

		if app.ID == "" {
			app.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		app.UpdatedAt = now

		const query = `INSERT INTO applications (id, job_posting_id, student_user_id, applicant_name, applicant_email, college_id, linkedin_url, github_url, gender, cover_letter, resume_path, terms_accepted, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
ON CONFLICT (job_posting_id, student_user_id) DO UPDATE SET applicant_name = EXCLUDED.applicant_name, applicant_email = EXCLUDED.applicant_email, college_id = EXCLUDED.college_id, linkedin_url = EXCLUDED.linkedin_url, github_url = EXCLUDED.github_url, gender = EXCLUDED.gender, cover_letter = EXCLUDED.cover_letter, resume_path = EXCLUDED.resume_path, terms_accepted = EXCLUDED.terms_accepted, updated_at = EXCLUDED.updated_at
RETURNING id, status, created_at, (xmax = 0) AS inserted`
		row := tx.QueryRowxContext(ctx, query,
			app.ID, app.JobPostingID, app.StudentUserID, app.ApplicantName, app.ApplicantEmail, app.CollegeID,
			app.LinkedInURL, app.GithubURL, app.Gender, app.CoverLetter, app.ResumePath, app.TermsAccepted,
			models.ApplicationPending, now,
		)
		if err := row.Scan(&app.ID, &app.Status, &app.CreatedAt, &created); err != nil {
			return fmt.Errorf("upsert application: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// UpdateStatus moves a pending application to a decided status. It returns
// ErrStatusFinal when the application was already decided and ErrHiredElsewhere
// when hiring a student who already holds a hire.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id, studentUserID string, to models.ApplicationStatus) (*models.Application, error) {
	var app models.Application
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockStudent(ctx, tx, studentUserID); err != nil {
			return err
		}

		if to == models.ApplicationHired {
			var hired bool
			const hiredQuery = `SELECT EXISTS (SELECT 1 FROM applications WHERE student_user_id = $1 AND status = $2 AND id <> $3)`
			if err := tx.GetContext(ctx, &hired, hiredQuery, studentUserID, models.ApplicationHired, id); err != nil {
				return fmt.Errorf("check hire lock: %w", err)
			}
			if hired {
				return ErrHiredElsewhere
			}
		}

		query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4 RETURNING ` + applicationColumns
		err := tx.GetContext(ctx, &app, query, id, to, time.Now().UTC(), models.ApplicationPending)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStatusFinal
		}
		if err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func lockStudent(ctx context.Context, tx *sqlx.Tx, userID string) error {
	var id string
	err := tx.GetContext(ctx, &id, `SELECT id FROM students WHERE user_id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoStudentProfile
	}
	if err != nil {
		return fmt.Errorf("lock student: %w", err)
	}
	return nil
}
