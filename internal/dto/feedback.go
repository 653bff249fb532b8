package dto

// StudentFeedbackRequest reviews the company behind a decided application.
type StudentFeedbackRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	Subject       string `json:"subject" validate:"required,max=150"`
	Message       string `json:"message" validate:"required,max=2000"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
}

// CompanyFeedbackRequest reviews a college by name.
type CompanyFeedbackRequest struct {
	CollegeName string `json:"collegeName" validate:"required,max=200"`
	JobID       string `json:"jobId"`
	Subject     string `json:"subject" validate:"required,max=150"`
	Message     string `json:"message" validate:"required,max=2000"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}
