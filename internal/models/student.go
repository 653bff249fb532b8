package models

import "time"

// College name sentinels.
const (
	CollegeUnassigned  = "Unassigned"
	CollegeAllColleges = "All Colleges"
)

// Student is the profile owned 1:1 by a student user. CollegeName keeps the
// value as typed; CollegeKey is its normalised comparison key.
type Student struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	CollegeName string    `db:"college_name" json:"college_name"`
	CollegeKey  string    `db:"college_key" json:"-"`
	Department  string    `db:"department" json:"department"`
	Year        int       `db:"year" json:"year"`
	CGPA        float64   `db:"cgpa" json:"cgpa"`
	Skills      string    `db:"skills" json:"skills"`
	ResumePath  string    `db:"resume_path" json:"resume_path,omitempty"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StudentRosterEntry is a student row joined with the owning user.
type StudentRosterEntry struct {
	Student
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

// StudentRosterFilter narrows the college roster.
type StudentRosterFilter struct {
	CollegeKey string
	Department string
}
