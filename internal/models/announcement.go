package models

import "time"

// Announcement is a broadcast from a company to the active applicants of one
// of its jobs.
type Announcement struct {
	ID             string    `db:"id" json:"id"`
	JobPostingID   string    `db:"job_posting_id" json:"job_posting_id"`
	CompanyUserID  string    `db:"company_user_id" json:"company_user_id"`
	Title          string    `db:"title" json:"title"`
	Message        string    `db:"message" json:"message"`
	RecipientCount int       `db:"recipient_count" json:"recipient_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// AnnouncementView adds the job title and company name for listings.
type AnnouncementView struct {
	Announcement
	JobTitle    string `db:"job_title" json:"job_title"`
	CompanyName string `db:"company_name" json:"company_name"`
}
