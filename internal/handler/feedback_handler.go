package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/pkg/response"
)

type feedbackService interface {
	SubmitStudent(ctx context.Context, principal *models.JWTClaims, req dto.StudentFeedbackRequest) (*models.Feedback, error)
	SubmitCompany(ctx context.Context, principal *models.JWTClaims, req dto.CompanyFeedbackRequest) (*models.Feedback, error)
}

// FeedbackHandler accepts feedback from students and companies.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs FeedbackHandler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Student godoc
// @Summary Review a company
// @Description Allowed once per decided application
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StudentFeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /studentfeedback/create [post]
func (h *FeedbackHandler) Student(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.StudentFeedbackRequest
	if !bindJSON(c, &req, "invalid feedback payload") {
		return
	}
	fb, err := h.service.SubmitStudent(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fb)
}

// Company godoc
// @Summary Review a college
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CompanyFeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /companyfeedback/create [post]
func (h *FeedbackHandler) Company(c *gin.Context) {
	claims, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CompanyFeedbackRequest
	if !bindJSON(c, &req, "invalid feedback payload") {
		return
	}
	fb, err := h.service.SubmitCompany(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fb)
}
