package dto

import (
	"time"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

// CompanyProfileRequest upserts the caller's company profile.
type CompanyProfileRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
	Website     string `json:"website" validate:"omitempty,url,max=200"`
	Industry    string `json:"industry" validate:"max=200"`
	Address     string `json:"address" validate:"max=500"`
}

// CreateJobRequest posts a new job.
type CreateJobRequest struct {
	Title         string         `json:"title" validate:"required,max=200"`
	Description   string         `json:"description" validate:"max=2000"`
	Type          models.JobType `json:"type" validate:"required,oneof=INTERNSHIP FULL_TIME PART_TIME CONTRACT"`
	CollegeName   string         `json:"collegeName" validate:"required,max=200"`
	Location      string         `json:"location" validate:"max=200"`
	Duration      string         `json:"duration" validate:"max=100"`
	Compensation  *int           `json:"compensation" validate:"omitempty,min=0"`
	MinimumCPI    *float64       `json:"minimumCpi" validate:"omitempty,min=0,max=10"`
	GoogleFormURL string         `json:"googleFormUrl" validate:"omitempty,url,max=1000"`
	ApplyBy       *time.Time     `json:"applyBy" validate:"required"`
}

// JobFormOptions lists the choices offered by the job form.
type JobFormOptions struct {
	Types    []models.JobType `json:"types"`
	Colleges []string         `json:"colleges"`
}

// CompanyApplicationView is an application with a signed resume link.
type CompanyApplicationView struct {
	models.ApplicationDetail
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// CompanyApplicationsResponse lists the applications to one job.
type CompanyApplicationsResponse struct {
	Job          models.JobWithCompany    `json:"job"`
	Applications []CompanyApplicationView `json:"applications"`
}

// AnnouncementRequest broadcasts a message to a job's active applicants.
type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// AnnouncementResponse reports the stored announcement.
type AnnouncementResponse struct {
	Announcement   models.Announcement `json:"announcement"`
	RecipientCount int                 `json:"recipientCount"`
}
