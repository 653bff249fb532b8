package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/pkg/database"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type feedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	ExistsForAuthorJob(ctx context.Context, authorUserID, jobID string) (bool, error)
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackView, error)
}

type applicationDetailFinder interface {
	FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error)
}

type ownedCollegeFinder interface {
	FindByOwner(ctx context.Context, userID string) (*models.College, error)
}

// FeedbackService records student reviews of companies and company reviews
// of colleges.
type FeedbackService struct {
	feedback     feedbackRepository
	applications applicationDetailFinder
	jobs         jobFinder
	colleges     ownedCollegeFinder
	validator    *validator.Validate
	logger       *zap.Logger
}

// FeedbackServiceDeps groups FeedbackService collaborators.
type FeedbackServiceDeps struct {
	Feedback     feedbackRepository
	Applications applicationDetailFinder
	Jobs         jobFinder
	Colleges     ownedCollegeFinder
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(deps FeedbackServiceDeps, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{
		feedback:     deps.Feedback,
		applications: deps.Applications,
		jobs:         deps.Jobs,
		colleges:     deps.Colleges,
		validator:    validate,
		logger:       logger,
	}
}

// SubmitStudent reviews the company behind one of the caller's decided
// applications. One review per job.
func (s *FeedbackService) SubmitStudent(ctx context.Context, principal *models.JWTClaims, req dto.StudentFeedbackRequest) (*models.Feedback, error) {
	if err := policy.Authorize(principal, policy.CapReviewCompany); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid feedback")
	}
	app, err := s.applications.FindDetail(ctx, req.ApplicationID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "load application")
	}
	if err := policy.CanReviewApplication(principal.UserID, &app.Application); err != nil {
		return nil, err
	}

	companyUserID, jobID := app.CompanyUserID, app.JobPostingID
	fb := &models.Feedback{
		AuthorUserID:        principal.UserID,
		AuthorRole:          principal.Role,
		TargetType:          models.FeedbackTargetCompany,
		TargetCompanyUserID: &companyUserID,
		JobPostingID:        &jobID,
		Subject:             req.Subject,
		Message:             req.Message,
		Rating:              req.Rating,
	}
	if err := s.create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// SubmitCompany reviews a college by name, optionally about one of the
// caller's jobs.
func (s *FeedbackService) SubmitCompany(ctx context.Context, principal *models.JWTClaims, req dto.CompanyFeedbackRequest) (*models.Feedback, error) {
	if err := policy.Authorize(principal, policy.CapReviewCollege); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid feedback")
	}
	name := policy.DisplayCollegeName(req.CollegeName)
	if policy.IsUnassigned(name) || policy.IsAllColleges(name) {
		return nil, invalid("feedback must name a specific college")
	}
	key := policy.CollegeKey(name)

	fb := &models.Feedback{
		AuthorUserID:      principal.UserID,
		AuthorRole:        principal.Role,
		TargetType:        models.FeedbackTargetCollege,
		TargetCollegeName: &name,
		TargetCollegeKey:  &key,
		Subject:           req.Subject,
		Message:           req.Message,
		Rating:            req.Rating,
	}
	if jobID := strings.TrimSpace(req.JobID); jobID != "" {
		job, err := s.jobs.FindByID(ctx, jobID)
		if err != nil {
			return nil, notFoundOr(err, "job not found", "load job")
		}
		if job.CompanyUserID != principal.UserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only link feedback to your own jobs")
		}
		if !policy.InCollegeScope(&job.JobPosting, key) {
			return nil, invalid("job is not open to that college")
		}
		fb.JobPostingID = &jobID
	}
	if err := s.create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) create(ctx context.Context, fb *models.Feedback) error {
	if target, ok := policy.FeedbackTargetFor(fb.AuthorRole); !ok || target != fb.TargetType {
		return appErrors.Clone(appErrors.ErrForbidden, "your role cannot give this kind of feedback")
	}
	if fb.JobPostingID != nil {
		exists, err := s.feedback.ExistsForAuthorJob(ctx, fb.AuthorUserID, *fb.JobPostingID)
		if err != nil {
			return appErrors.Dependency(err, "check feedback")
		}
		if exists {
			return duplicateFeedbackError()
		}
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		if database.IsUniqueViolation(err) {
			return duplicateFeedbackError()
		}
		s.logger.Error("failed to create feedback", zap.String("author_user_id", fb.AuthorUserID), zap.Error(err))
		return appErrors.Dependency(err, "create feedback")
	}
	return nil
}

// ListForCompany returns feedback addressed to the caller's company,
// optionally narrowed to one job.
func (s *FeedbackService) ListForCompany(ctx context.Context, principal *models.JWTClaims, jobID string) ([]models.FeedbackView, error) {
	if err := policy.Authorize(principal, policy.CapReadCompanyFeedback); err != nil {
		return nil, err
	}
	views, err := s.feedback.List(ctx, models.FeedbackFilter{
		TargetCompanyUserID: principal.UserID,
		JobPostingID:        strings.TrimSpace(jobID),
	})
	if err != nil {
		return nil, appErrors.Dependency(err, "list feedback")
	}
	return views, nil
}

// ListForCollege returns feedback addressed to the caller's college.
func (s *FeedbackService) ListForCollege(ctx context.Context, principal *models.JWTClaims) ([]models.FeedbackView, error) {
	if err := policy.Authorize(principal, policy.CapReadCollegeFeedback); err != nil {
		return nil, err
	}
	college, err := s.colleges.FindByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "set up your college profile first", "load college")
	}
	views, err := s.feedback.List(ctx, models.FeedbackFilter{TargetCollegeKey: college.NameKey})
	if err != nil {
		return nil, appErrors.Dependency(err, "list feedback")
	}
	return views, nil
}

func duplicateFeedbackError() *appErrors.Error {
	return appErrors.Clone(appErrors.ErrConflict, "feedback already submitted for this job")
}
