package models

import "time"

// FeedbackTarget is the kind of entity a feedback entry is addressed to.
type FeedbackTarget string

const (
	FeedbackTargetCompany FeedbackTarget = "COMPANY"
	FeedbackTargetCollege FeedbackTarget = "COLLEGE"
)

// Feedback is authored by a student (about a company) or by a company (about
// a college).
type Feedback struct {
	ID                  string         `db:"id" json:"id"`
	AuthorUserID        string         `db:"author_user_id" json:"author_user_id"`
	AuthorRole          UserRole       `db:"author_role" json:"author_role"`
	TargetType          FeedbackTarget `db:"target_type" json:"target_type"`
	TargetCompanyUserID *string        `db:"target_company_user_id" json:"target_company_user_id,omitempty"`
	TargetCollegeName   *string        `db:"target_college_name" json:"target_college_name,omitempty"`
	TargetCollegeKey    *string        `db:"target_college_key" json:"-"`
	JobPostingID        *string        `db:"job_posting_id" json:"job_posting_id,omitempty"`
	Subject             string         `db:"subject" json:"subject"`
	Message             string         `db:"message" json:"message"`
	Rating              int            `db:"rating" json:"rating"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
}

// FeedbackView adds author and job context for listings.
type FeedbackView struct {
	Feedback
	AuthorName string  `db:"author_name" json:"author_name"`
	JobTitle   *string `db:"job_title" json:"job_title,omitempty"`
}

// FeedbackFilter narrows feedback listings.
type FeedbackFilter struct {
	TargetCompanyUserID string
	TargetCollegeKey    string
	JobPostingID        string
}
