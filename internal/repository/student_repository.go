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

const studentColumns = `id, user_id, student_id, college_name, college_key, department, year, cgpa, skills, resume_path, is_approved, created_at, updated_at`

// StudentRepository manages student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByUserID returns the profile owned by the user.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by user: %w", err)
	}
	return &student, nil
}

// FindByID returns the profile by its primary key.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Save updates the mutable profile fields. Approval is only cleared when the
// stored college name differs from the new one, so an approval committed
// since the profile was read survives; the resulting flag is written back to
// student. When purgeChat is set the student's own chat messages are removed
// in the same transaction and the number of purged rows is returned.
func (r *StudentRepository) Save(ctx context.Context, student *models.Student, purgeChat bool) (int64, error) {
	student.UpdatedAt = time.Now().UTC()
	var purged int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const query = `UPDATE students SET college_name = :college_name, college_key = :college_key, department = :department, year = :year, cgpa = :cgpa, skills = :skills, resume_path = :resume_path, is_approved = CASE WHEN college_name = :college_name THEN is_approved ELSE FALSE END, updated_at = :updated_at WHERE user_id = :user_id RETURNING is_approved`
		rows, err := sqlx.NamedQueryContext(ctx, tx, query, student)
		if err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		found := rows.Next()
		if found {
			err = rows.Scan(&student.IsApproved)
		}
		if closeErr := rows.Close(); err == nil {
			err = closeErr
		}
		if err == nil {
			err = rows.Err()
		}
		if err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		if !found {
			return sql.ErrNoRows
		}
		if err := ensureCollege(ctx, tx, student.CollegeName, student.CollegeKey); err != nil {
			return err
		}
		if purgeChat {
			n, err := purgeMessagesBySender(ctx, tx, student.UserID)
			if err != nil {
				return err
			}
			purged = n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

// Approve marks the student approved provided they still belong to the
// college identified by collegeKey. sql.ErrNoRows means the student is gone
// or has moved to another college.
func (r *StudentRepository) Approve(ctx context.Context, id, collegeKey string) error {
	const query = `UPDATE students SET is_approved = TRUE, updated_at = $3 WHERE id = $1 AND college_key = $2`
	res, err := r.db.ExecContext(ctx, query, id, collegeKey, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("approve student: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Roster lists students of a college ordered by department then student id.
func (r *StudentRepository) Roster(ctx context.Context, filter models.StudentRosterFilter) ([]models.StudentRosterEntry, error) {
	builder := psql.Select(
		"s.id", "s.user_id", "s.student_id", "s.college_name", "s.college_key", "s.department",
		"s.year", "s.cgpa", "s.skills", "s.resume_path", "s.is_approved", "s.created_at", "s.updated_at",
		"u.first_name", "u.last_name", "u.email",
	).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where("s.college_key = ?", filter.CollegeKey).
		OrderBy("s.department ASC", "s.student_id ASC")

	if filter.Department != "" {
		builder = builder.Where("LOWER(s.department) = LOWER(?)", filter.Department)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build roster query: %w", err)
	}

	var roster []models.StudentRosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, args...); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return roster, nil
}

// CountApplications returns how many applications the student has submitted.
func (r *StudentRepository) CountApplications(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM applications WHERE student_user_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count student applications: %w", err)
	}
	return count, nil
}

func insertStudent(ctx context.Context, tx *sqlx.Tx, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	const query = `INSERT INTO students (id, user_id, student_id, college_name, college_key, department, year, cgpa, skills, resume_path, is_approved, created_at, updated_at) VALUES (:id, :user_id, :student_id, :college_name, :college_key, :department, :year, :cgpa, :skills, :resume_path, :is_approved, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}
