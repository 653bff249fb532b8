package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/service"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/export"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

type collegeService interface {
	Profile(ctx context.Context, principal *models.JWTClaims) (*models.College, error)
	SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.CollegeProfileRequest) (*models.College, error)
	Directory(ctx context.Context) ([]dto.CollegeDirectoryEntry, error)
	Roster(ctx context.Context, principal *models.JWTClaims, query dto.RosterQuery) ([]dto.RosterEntryView, error)
	ExportRoster(ctx context.Context, principal *models.JWTClaims, query dto.RosterQuery, format export.Format) (*service.RosterExport, error)
	Approve(ctx context.Context, principal *models.JWTClaims, studentID string) (*models.Student, error)
	Companies(ctx context.Context, principal *models.JWTClaims) ([]models.CompanySummary, error)
	CompanyJobs(ctx context.Context, principal *models.JWTClaims, companyUserID string) ([]models.JobWithCompany, error)
	Job(ctx context.Context, principal *models.JWTClaims, jobID string) (*models.JobWithCompany, error)
}

type collegeFeedback interface {
	ListForCollege(ctx context.Context, principal *models.JWTClaims) ([]models.FeedbackView, error)
}

// CollegeHandler exposes the college administrator's portal and the public
// college directory.
type CollegeHandler struct {
	colleges collegeService
	feedback collegeFeedback
}

// NewCollegeHandler constructs CollegeHandler.
func NewCollegeHandler(colleges collegeService, feedback collegeFeedback) *CollegeHandler {
	return &CollegeHandler{colleges: colleges, feedback: feedback}
}

// Directory godoc
// @Summary College directory
// @Description Registered colleges for registration and job forms
// @Tags Colleges
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) Directory(c *gin.Context) {
	entries, err := h.colleges.Directory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Profile godoc
// @Summary College profile
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /college/profile [get]
func (h *CollegeHandler) Profile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	college, err := h.colleges.Profile(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// SaveProfile godoc
// @Summary Create or update the college profile
// @Description A college name can be claimed by one administrator only
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CollegeProfileRequest true "Profile"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /college/profile [post]
func (h *CollegeHandler) SaveProfile(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CollegeProfileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	college, err := h.colleges.SaveProfile(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Students godoc
// @Summary College roster
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /college/students [get]
func (h *CollegeHandler) Students(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	roster, err := h.colleges.Roster(c.Request.Context(), claims, rosterQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, map[string]interface{}{"count": len(roster)})
}

// ExportStudents godoc
// @Summary Export the college roster
// @Tags Colleges
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Param department query string false "Department filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /college/students/export [get]
func (h *CollegeHandler) ExportStudents(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	format := export.Format(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(export.FormatCSV)))))
	file, err := h.colleges.ExportRoster(c.Request.Context(), claims, rosterQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}

// Approve godoc
// @Summary Approve a student
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student profile ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /college/approvestudent/{id} [post]
func (h *CollegeHandler) Approve(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	student, err := h.colleges.Approve(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Companies godoc
// @Summary Companies recruiting at the college
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /college/companies [get]
func (h *CollegeHandler) Companies(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	companies, err := h.colleges.Companies(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies, nil)
}

// CompanyJobs godoc
// @Summary A company's jobs open to the college
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company user ID"
// @Success 200 {object} response.Envelope
// @Router /college/companies/{companyId}/jobs [get]
func (h *CollegeHandler) CompanyJobs(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	companyID := strings.TrimSpace(c.Param("companyId"))
	if companyID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "companyId required"))
		return
	}
	jobs, err := h.colleges.CompanyJobs(c.Request.Context(), claims, companyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// Job godoc
// @Summary Job detail for the college
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /college/jobs/{id} [get]
func (h *CollegeHandler) Job(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	job, err := h.colleges.Job(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Feedback godoc
// @Summary Feedback received by the college
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /college/feedback [get]
func (h *CollegeHandler) Feedback(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.feedback.ListForCollege(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

func rosterQuery(c *gin.Context) dto.RosterQuery {
	return dto.RosterQuery{
		College:    strings.TrimSpace(c.Query("college")),
		Department: strings.TrimSpace(c.Query("department")),
	}
}
