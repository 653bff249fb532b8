package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

type studentService interface {
	Profile(ctx context.Context, principal *models.JWTClaims) (*dto.StudentProfileResponse, error)
	SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.StudentProfileRequest, resume *dto.FileUpload) (*models.Student, error)
	ListJobs(ctx context.Context, principal *models.JWTClaims) (*dto.StudentJobsResponse, error)
}

type applicationService interface {
	ApplyForm(ctx context.Context, principal *models.JWTClaims, jobID string) (*dto.ApplyFormResponse, error)
	Apply(ctx context.Context, principal *models.JWTClaims, jobID string, req dto.ApplyRequest, resume *dto.FileUpload) (*dto.ApplyResponse, error)
	SetStatus(ctx context.Context, principal *models.JWTClaims, applicationID string, to models.ApplicationStatus) (*models.Application, error)
	ListForJob(ctx context.Context, principal *models.JWTClaims, jobID string) (*dto.CompanyApplicationsResponse, error)
	Detail(ctx context.Context, principal *models.JWTClaims, applicationID string) (*dto.CompanyApplicationView, error)
}

type studentAnnouncements interface {
	ListForStudent(ctx context.Context, principal *models.JWTClaims) ([]models.AnnouncementView, error)
}

// StudentHandler exposes the student dashboard, job board and applications.
type StudentHandler struct {
	students      studentService
	applications  applicationService
	announcements studentAnnouncements
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, applications applicationService, announcements studentAnnouncements) *StudentHandler {
	return &StudentHandler{students: students, applications: applications, announcements: announcements}
}

// Profile godoc
// @Summary Student dashboard
// @Description Profile, approval state, application count and announcements
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/profile [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.students.Profile(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// SaveProfile godoc
// @Summary Update student profile
// @Description Changing the college name resets approval and ends chat membership.
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param collegeName formData string false "College name"
// @Param department formData string true "Department"
// @Param year formData int false "Year"
// @Param cgpa formData number false "CGPA"
// @Param skills formData string false "Skills"
// @Param resume formData file false "Resume"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/profile [post]
func (h *StudentHandler) SaveProfile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.StudentProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	resume, err := optionalUpload(c, "resume")
	if err != nil {
		response.Error(c, err)
		return
	}

	student, err := h.students.SaveProfile(c.Request.Context(), claims, req, resume)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Jobs godoc
// @Summary Eligible jobs
// @Description Jobs open to the student's college and CPI, with application state
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /student/jobs [get]
func (h *StudentHandler) Jobs(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	jobs, err := h.students.ListJobs(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// ApplyForm godoc
// @Summary Application form
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /student/apply/{jobId} [get]
func (h *StudentHandler) ApplyForm(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	form, err := h.applications.ApplyForm(c.Request.Context(), claims, c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Apply godoc
// @Summary Apply or reapply to a job
// @Description Creates the application or replaces the pending one. A new resume is optional.
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Param resume formData file false "Resume"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/apply/{jobId} [post]
func (h *StudentHandler) Apply(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}
	resume, err := optionalUpload(c, "resume")
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.applications.Apply(c.Request.Context(), claims, c.Param("jobId"), req, resume)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	response.JSON(c, status, res, nil)
}

// Announcements godoc
// @Summary Announcements for the student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/announcements [get]
func (h *StudentHandler) Announcements(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.announcements.ListForStudent(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
