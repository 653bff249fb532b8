package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

type companyService interface {
	Profile(ctx context.Context, principal *models.JWTClaims) (*models.Company, error)
	SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.CompanyProfileRequest) (*models.Company, error)
	JobForm(ctx context.Context, principal *models.JWTClaims) (*dto.JobFormOptions, error)
	CreateJob(ctx context.Context, principal *models.JWTClaims, req dto.CreateJobRequest) (*models.JobPosting, error)
	MyJobs(ctx context.Context, principal *models.JWTClaims) ([]models.JobWithCompany, error)
	DeleteJob(ctx context.Context, principal *models.JWTClaims, jobID string) error
}

type companyAnnouncements interface {
	Create(ctx context.Context, principal *models.JWTClaims, jobID string, req dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	ListForCompany(ctx context.Context, principal *models.JWTClaims) ([]models.AnnouncementView, error)
}

type companyFeedback interface {
	ListForCompany(ctx context.Context, principal *models.JWTClaims, jobID string) ([]models.FeedbackView, error)
}

// CompanyHandler exposes company profile, job and applicant endpoints.
type CompanyHandler struct {
	companies     companyService
	applications  applicationService
	announcements companyAnnouncements
	feedback      companyFeedback
}

// NewCompanyHandler constructs CompanyHandler.
func NewCompanyHandler(companies companyService, applications applicationService, announcements companyAnnouncements, feedback companyFeedback) *CompanyHandler {
	return &CompanyHandler{
		companies:     companies,
		applications:  applications,
		announcements: announcements,
		feedback:      feedback,
	}
}

// Profile godoc
// @Summary Company profile
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /company/profile [get]
func (h *CompanyHandler) Profile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	company, err := h.companies.Profile(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, company, nil)
}

// SaveProfile godoc
// @Summary Update company profile
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CompanyProfileRequest true "Profile"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /company/profile [post]
func (h *CompanyHandler) SaveProfile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CompanyProfileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	company, err := h.companies.SaveProfile(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, company, nil)
}

// JobForm godoc
// @Summary Job form options
// @Description Job types and target colleges, starting with All Colleges
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /company/createjob [get]
func (h *CompanyHandler) JobForm(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	options, err := h.companies.JobForm(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// CreateJob godoc
// @Summary Post a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateJobRequest true "Job"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /company/createjob [post]
func (h *CompanyHandler) CreateJob(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !bindJSON(c, &req, "invalid job payload") {
		return
	}
	job, err := h.companies.CreateJob(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// MyJobs godoc
// @Summary Jobs posted by the company
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /company/myjobs [get]
func (h *CompanyHandler) MyJobs(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	jobs, err := h.companies.MyJobs(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// DeleteJob godoc
// @Summary Delete a job
// @Description Removes the job with its applications and announcements
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /company/deletejob/{id} [post]
func (h *CompanyHandler) DeleteJob(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	if err := h.companies.DeleteJob(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Applications godoc
// @Summary Applications to a job
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /company/applications/{jobId} [get]
func (h *CompanyHandler) Applications(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	res, err := h.applications.ListForJob(c.Request.Context(), claims, c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// ApplicationDetail godoc
// @Summary Application detail
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /company/applicationdetails/{id} [get]
func (h *CompanyHandler) ApplicationDetail(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	detail, err := h.applications.Detail(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Hire godoc
// @Summary Hire an applicant
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /company/hire/{id} [post]
func (h *CompanyHandler) Hire(c *gin.Context) {
	h.decide(c, models.ApplicationHired)
}

// Reject godoc
// @Summary Reject an applicant
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /company/reject/{id} [post]
func (h *CompanyHandler) Reject(c *gin.Context) {
	h.decide(c, models.ApplicationRejected)
}

func (h *CompanyHandler) decide(c *gin.Context, to models.ApplicationStatus) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	app, err := h.applications.SetStatus(c.Request.Context(), claims, c.Param("id"), to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app, nil)
}

// CreateAnnouncement godoc
// @Summary Announce to a job's applicants
// @Description Delivered to every applicant of the job who is not hired elsewhere
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param payload body dto.AnnouncementRequest true "Announcement"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /company/createannouncement/{jobId} [post]
func (h *CompanyHandler) CreateAnnouncement(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if !bindJSON(c, &req, "invalid announcement payload") {
		return
	}
	res, err := h.announcements.Create(c.Request.Context(), claims, c.Param("jobId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Announcements godoc
// @Summary Announcements sent by the company
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /company/announcements [get]
func (h *CompanyHandler) Announcements(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.announcements.ListForCompany(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Feedback godoc
// @Summary Feedback received by the company
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param jobId query string false "Only feedback about this job"
// @Success 200 {object} response.Envelope
// @Router /company/feedback [get]
func (h *CompanyHandler) Feedback(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.feedback.ListForCompany(c.Request.Context(), claims, strings.TrimSpace(c.Query("jobId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
