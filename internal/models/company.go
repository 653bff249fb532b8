package models

import "time"

// Company is the profile owned 1:1 by a company user.
type Company struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Website     string    `db:"website" json:"website"`
	Industry    string    `db:"industry" json:"industry"`
	Address     string    `db:"address" json:"address"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CompanySummary aggregates the jobs a company has posted into a college scope.
type CompanySummary struct {
	CompanyUserID string    `db:"company_user_id" json:"company_user_id"`
	CompanyName   string    `db:"company_name" json:"company_name"`
	Industry      string    `db:"industry" json:"industry"`
	JobCount      int       `db:"job_count" json:"job_count"`
	LastPostedAt  time.Time `db:"last_posted_at" json:"last_posted_at"`
}
