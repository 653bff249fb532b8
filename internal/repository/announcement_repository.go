package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

const announcementViewQuery = `SELECT an.id, an.job_posting_id, an.company_user_id, an.title, an.message, an.recipient_count, an.created_at,
	j.title AS job_title, COALESCE(c.name, '') AS company_name
FROM announcements an
JOIN job_postings j ON j.id = an.job_posting_id
LEFT JOIN companies c ON c.user_id = an.company_user_id`

// AnnouncementRepository manages company announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository constructs an AnnouncementRepository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// CreateForActiveApplicants counts the distinct students holding a
// non-rejected application to the job and persists the announcement only
// when that count is positive. The recipient count is returned either way.
func (r *AnnouncementRepository) CreateForActiveApplicants(ctx context.Context, ann *models.Announcement) (int, error) {
	var recipients int
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const countQuery = `SELECT COUNT(DISTINCT student_user_id) FROM applications WHERE job_posting_id = $1 AND status <> $2`
		if err := tx.GetContext(ctx, &recipients, countQuery, ann.JobPostingID, models.ApplicationRejected); err != nil {
			return fmt.Errorf("count announcement recipients: %w", err)
		}
		if recipients == 0 {
			return nil
		}

		if ann.ID == "" {
			ann.ID = uuid.NewString()
		}
		ann.RecipientCount = recipients
		ann.CreatedAt = time.Now().UTC()

		const insert = `INSERT INTO announcements (id, job_posting_id, company_user_id, title, message, recipient_count, created_at) VALUES (:id, :job_posting_id, :company_user_id, :title, :message, :recipient_count, :created_at)`
		if _, err := tx.NamedExecContext(ctx, insert, ann); err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recipients, nil
}

// ListForStudent returns announcements for jobs the student holds a
// non-rejected application to, newest first. A non-positive limit returns
// every row.
func (r *AnnouncementRepository) ListForStudent(ctx context.Context, studentUserID string, limit int) ([]models.AnnouncementView, error) {
	query := announcementViewQuery + `
WHERE EXISTS (SELECT 1 FROM applications a WHERE a.job_posting_id = an.job_posting_id AND a.student_user_id = $1 AND a.status <> $2)
ORDER BY an.created_at DESC`
	args := []interface{}{studentUserID, models.ApplicationRejected}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	var views []models.AnnouncementView
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("list student announcements: %w", err)
	}
	return views, nil
}

// ListByCompany returns the company's announcements, newest first.
func (r *AnnouncementRepository) ListByCompany(ctx context.Context, companyUserID string) ([]models.AnnouncementView, error) {
	query := announcementViewQuery + ` WHERE an.company_user_id = $1 ORDER BY an.created_at DESC`
	var views []models.AnnouncementView
	if err := r.db.SelectContext(ctx, &views, query, companyUserID); err != nil {
		return nil, fmt.Errorf("list company announcements: %w", err)
	}
	return views, nil
}
