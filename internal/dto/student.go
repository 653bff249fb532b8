package dto

import "github.com/noah-isme/placement-portal-api/internal/models"

// StudentProfileRequest updates the caller's student profile.
type StudentProfileRequest struct {
	CollegeName string  `json:"collegeName" form:"collegeName" validate:"max=200"`
	Department  string  `json:"department" form:"department" validate:"required,max=100"`
	Year        int     `json:"year" form:"year" validate:"min=1,max=6"`
	CGPA        float64 `json:"cgpa" form:"cgpa" validate:"min=0,max=10"`
	Skills      string  `json:"skills" form:"skills" validate:"max=1000"`
}

// ApprovalStatus explains whether the student may use jobs and chat.
type ApprovalStatus struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// StudentProfileResponse is the student dashboard.
type StudentProfileResponse struct {
	Profile       models.Student            `json:"profile"`
	Approval      ApprovalStatus            `json:"approval"`
	AppliedCount  int                       `json:"appliedCount"`
	Announcements []models.AnnouncementView `json:"announcements"`
}

// StudentJobView is a listed job annotated for the viewing student.
type StudentJobView struct {
	models.JobWithCompany
	ApplicationID     string                   `json:"applicationId,omitempty"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus,omitempty"`
	FeedbackGiven     bool                     `json:"feedbackGiven"`
	Actionable        bool                     `json:"actionable"`
	DeadlinePassed    bool                     `json:"deadlinePassed"`
}

// StudentJobsResponse lists the jobs a student is eligible for.
type StudentJobsResponse struct {
	Jobs       []StudentJobView `json:"jobs"`
	HireLocked bool             `json:"hireLocked"`
}

// ApplyRequest is the on-site application form.
type ApplyRequest struct {
	ApplicantName  string `json:"applicantName" form:"applicantName" validate:"required,max=200"`
	ApplicantEmail string `json:"applicantEmail" form:"applicantEmail" validate:"required,email,max=200"`
	CollegeID      string `json:"collegeId" form:"collegeId" validate:"required,max=50"`
	LinkedInURL    string `json:"linkedinUrl" form:"linkedinUrl" validate:"required,url,max=300"`
	GithubURL      string `json:"githubUrl" form:"githubUrl" validate:"required,url,max=300"`
	Gender         string `json:"gender" form:"gender" validate:"required,max=20"`
	CoverLetter    string `json:"coverLetter" form:"coverLetter" validate:"required,max=2000"`
	TermsAccepted  bool   `json:"termsAccepted" form:"termsAccepted"`
}

// ApplyFormResponse is the job plus a prefilled application form.
type ApplyFormResponse struct {
	Job               models.JobWithCompany    `json:"job"`
	Form              ApplyRequest             `json:"form"`
	HasResume         bool                     `json:"hasResume"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus,omitempty"`
}

// ApplyResponse reports the stored application.
type ApplyResponse struct {
	Application models.Application `json:"application"`
	Created     bool               `json:"created"`
}
