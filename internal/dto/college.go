package dto

import "github.com/noah-isme/placement-portal-api/internal/models"

// CollegeProfileRequest upserts the caller's college.
type CollegeProfileRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	City       string `json:"city" validate:"max=200"`
	State      string `json:"state" validate:"max=200"`
	WebsiteURL string `json:"websiteUrl" validate:"omitempty,url,max=500"`
}

// RosterQuery filters the college roster.
type RosterQuery struct {
	College    string `form:"college"`
	Department string `form:"department"`
}

// RosterEntryView is a roster row with a signed resume link.
type RosterEntryView struct {
	models.StudentRosterEntry
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// CollegeDirectoryEntry is a college offered by registration pickers.
type CollegeDirectoryEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Claimed bool   `json:"claimed"`
}
