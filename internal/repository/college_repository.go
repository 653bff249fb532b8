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
	"github.com/noah-isme/placement-portal-api/internal/policy"
)

const collegeColumns = `id, name, name_key, city, state, website_url, owner_user_id, created_at, updated_at`

// CollegeRepository manages the college directory and college ownership.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// FindByOwner returns the college claimed by the user.
func (r *CollegeRepository) FindByOwner(ctx context.Context, userID string) (*models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE owner_user_id = $1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find college by owner: %w", err)
	}
	return &college, nil
}

// List returns every known college ordered by name.
func (r *CollegeRepository) List(ctx context.Context) ([]models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges ORDER BY name ASC`
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// SaveOwned creates or updates the profile of the college owned by
// college.OwnerUserID. Renaming onto an unclaimed directory entry moves the
// ownership to that entry; renaming onto a college owned by someone else
// returns ErrCollegeClaimed.
func (r *CollegeRepository) SaveOwned(ctx context.Context, college *models.College) error {
	if college.OwnerUserID == nil {
		return fmt.Errorf("save college: owner required")
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current models.College
		query := `SELECT ` + collegeColumns + ` FROM colleges WHERE owner_user_id = $1 FOR UPDATE`
		err := tx.GetContext(ctx, &current, query, *college.OwnerUserID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return claimCollege(ctx, tx, college)
		case err != nil:
			return fmt.Errorf("lock owned college: %w", err)
		}

		if current.NameKey != college.NameKey {
			const release = `UPDATE colleges SET owner_user_id = NULL, updated_at = $2 WHERE id = $1`
			if _, err := tx.ExecContext(ctx, release, current.ID, time.Now().UTC()); err != nil {
				return fmt.Errorf("release college: %w", err)
			}
			return claimCollege(ctx, tx, college)
		}

		college.ID = current.ID
		college.CreatedAt = current.CreatedAt
		college.UpdatedAt = time.Now().UTC()
		const update = `UPDATE colleges SET name = :name, city = :city, state = :state, website_url = :website_url, updated_at = :updated_at WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, college); err != nil {
			return fmt.Errorf("update college: %w", err)
		}
		return nil
	})
}

// claimCollege inserts the college or takes ownership of an unclaimed row with
// the same key.
func claimCollege(ctx context.Context, tx *sqlx.Tx, college *models.College) error {
	if college.ID == "" {
		college.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	college.UpdatedAt = now

	const query = `INSERT INTO colleges (id, name, name_key, city, state, website_url, owner_user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
ON CONFLICT (name_key) DO UPDATE SET name = EXCLUDED.name, city = EXCLUDED.city, state = EXCLUDED.state, website_url = EXCLUDED.website_url, owner_user_id = EXCLUDED.owner_user_id, updated_at = EXCLUDED.updated_at
WHERE colleges.owner_user_id IS NULL
RETURNING id, created_at`
	row := tx.QueryRowxContext(ctx, query, college.ID, college.Name, college.NameKey, college.City, college.State, college.WebsiteURL, college.OwnerUserID, now)
	if err := row.Scan(&college.ID, &college.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCollegeClaimed
		}
		return fmt.Errorf("claim college: %w", err)
	}
	return nil
}

// ensureCollege adds an unclaimed directory entry for a college name typed by
// a student, unless one already exists.
func ensureCollege(ctx context.Context, q sqlx.ExecerContext, name, key string) error {
	if policy.IsUnassigned(name) || policy.IsAllColleges(name) {
		return nil
	}
	const query = `INSERT INTO colleges (id, name, name_key, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) ON CONFLICT (name_key) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, uuid.NewString(), name, key, time.Now().UTC()); err != nil {
		return fmt.Errorf("ensure college: %w", err)
	}
	return nil
}
