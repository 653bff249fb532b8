package models

import "time"

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationHired    ApplicationStatus = "HIRED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application is unique per (job, student). The applicant fields are a
// snapshot taken at submission time.
type Application struct {
	ID             string            `db:"id" json:"id"`
	JobPostingID   string            `db:"job_posting_id" json:"job_posting_id"`
	StudentUserID  string            `db:"student_user_id" json:"student_user_id"`
	ApplicantName  string            `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail string            `db:"applicant_email" json:"applicant_email"`
	CollegeID      string            `db:"college_id" json:"college_id"`
	LinkedInURL    string            `db:"linkedin_url" json:"linkedin_url"`
	GithubURL      string            `db:"github_url" json:"github_url"`
	Gender         string            `db:"gender" json:"gender"`
	CoverLetter    string            `db:"cover_letter" json:"cover_letter"`
	ResumePath     string            `db:"resume_path" json:"-"`
	TermsAccepted  bool              `db:"terms_accepted" json:"terms_accepted"`
	Status         ApplicationStatus `db:"status" json:"status"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// ApplicationDetail joins an application with its job and student profile.
type ApplicationDetail struct {
	Application
	JobTitle      string  `db:"job_title" json:"job_title"`
	CompanyUserID string  `db:"company_user_id" json:"company_user_id"`
	StudentNumber string  `db:"student_number" json:"student_number"`
	Department    string  `db:"department" json:"department"`
	Year          int     `db:"year" json:"year"`
	CGPA          float64 `db:"cgpa" json:"cgpa"`
	CollegeName   string  `db:"college_name" json:"college_name"`
}
