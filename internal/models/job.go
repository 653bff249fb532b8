package models

import "time"

// JobType enumerates the supported job posting types.
type JobType string

const (
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
)

// JobTypes lists job types in display order.
var JobTypes = []JobType{JobTypeInternship, JobTypeFullTime, JobTypePartTime, JobTypeContract}

// JobPosting is a job owned by a company user and scoped to one college name
// or to every college.
type JobPosting struct {
	ID            string    `db:"id" json:"id"`
	CompanyUserID string    `db:"company_user_id" json:"company_user_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Type          JobType   `db:"type" json:"type"`
	CollegeName   string    `db:"college_name" json:"college_name"`
	CollegeKey    string    `db:"college_key" json:"-"`
	Location      string    `db:"location" json:"location"`
	Duration      string    `db:"duration" json:"duration"`
	Compensation  *int      `db:"compensation" json:"compensation,omitempty"`
	MinimumCPI    *float64  `db:"minimum_cpi" json:"minimum_cpi,omitempty"`
	GoogleFormURL string    `db:"google_form_url" json:"google_form_url,omitempty"`
	ApplyBy       time.Time `db:"apply_by" json:"apply_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// JobWithCompany decorates a posting with its company name and applicant count.
type JobWithCompany struct {
	JobPosting
	CompanyName      string `db:"company_name" json:"company_name"`
	ApplicationCount int    `db:"application_count" json:"application_count"`
}
