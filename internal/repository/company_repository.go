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

// CompanyRepository manages company profiles.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs a CompanyRepository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindByUserID returns the profile owned by the user.
func (r *CompanyRepository) FindByUserID(ctx context.Context, userID string) (*models.Company, error) {
	const query = `SELECT id, user_id, name, description, website, industry, address, created_at, updated_at FROM companies WHERE user_id = $1`
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

// Upsert creates the profile or updates it in place.
func (r *CompanyRepository) Upsert(ctx context.Context, company *models.Company) error {
	return upsertCompany(ctx, r.db, company)
}

// SummariesForCollege groups the jobs visible to a college by company, most
// recently active company first.
func (r *CompanyRepository) SummariesForCollege(ctx context.Context, collegeKey, allCollegesKey string) ([]models.CompanySummary, error) {
	query, args, err := psql.Select(
		"j.company_user_id",
		"COALESCE(c.name, '') AS company_name",
		"COALESCE(c.industry, '') AS industry",
		"COUNT(*) AS job_count",
		"MAX(j.created_at) AS last_posted_at",
	).
		From("job_postings j").
		LeftJoin("companies c ON c.user_id = j.company_user_id").
		Where("j.college_key IN (?, ?)", collegeKey, allCollegesKey).
		GroupBy("j.company_user_id", "c.name", "c.industry").
		OrderBy("last_posted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build company summary query: %w", err)
	}

	var summaries []models.CompanySummary
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("list company summaries: %w", err)
	}
	return summaries, nil
}

func upsertCompany(ctx context.Context, q sqlx.ExtContext, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	company.UpdatedAt = now

	const query = `INSERT INTO companies (id, user_id, name, description, website, industry, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, website = EXCLUDED.website, industry = EXCLUDED.industry, address = EXCLUDED.address, updated_at = EXCLUDED.updated_at
RETURNING id, created_at`
	row := q.QueryRowxContext(ctx, query, company.ID, company.UserID, company.Name, company.Description, company.Website, company.Industry, company.Address, now)
	if err := row.Scan(&company.ID, &company.CreatedAt); err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}
