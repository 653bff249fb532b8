package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type announcementRepository interface {
	CreateForActiveApplicants(ctx context.Context, ann *models.Announcement) (int, error)
	ListForStudent(ctx context.Context, studentUserID string, limit int) ([]models.AnnouncementView, error)
	ListByCompany(ctx context.Context, companyUserID string) ([]models.AnnouncementView, error)
}

// AnnouncementService broadcasts company messages to a job's active
// applicants.
type AnnouncementService struct {
	announcements announcementRepository
	jobs          jobFinder
	audit         auditRepository
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(announcements announcementRepository, jobs jobFinder, audit auditRepository, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AnnouncementService{
		announcements: announcements,
		jobs:          jobs,
		audit:         audit,
		validator:     validate,
		logger:        logger,
	}
}

// Create posts an announcement for one of the caller's jobs. It fails when no
// student holds a non-rejected application to the job.
func (s *AnnouncementService) Create(ctx context.Context, principal *models.JWTClaims, jobID string, req dto.AnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := policy.Authorize(principal, policy.CapAnnounce); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid announcement")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job not found", "load job")
	}
	if job.CompanyUserID != principal.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only announce to applicants of your own jobs")
	}

	ann := &models.Announcement{
		JobPostingID:  jobID,
		CompanyUserID: principal.UserID,
		Title:         req.Title,
		Message:       req.Message,
	}
	recipients, err := s.announcements.CreateForActiveApplicants(ctx, ann)
	if err != nil {
		s.logger.Error("failed to create announcement", zap.String("job_id", jobID), zap.Error(err))
		return nil, appErrors.Dependency(err, "create announcement")
	}
	if recipients == 0 {
		return nil, invalid("no eligible applicants to notify for this job")
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      principal,
		action:     models.AuditActionAnnouncement,
		resource:   "announcement",
		resourceID: ann.ID,
		newValues:  map[string]interface{}{"job_posting_id": jobID, "recipients": recipients},
	})
	return &dto.AnnouncementResponse{Announcement: *ann, RecipientCount: recipients}, nil
}

// ListForStudent returns every announcement visible to the student.
func (s *AnnouncementService) ListForStudent(ctx context.Context, principal *models.JWTClaims) ([]models.AnnouncementView, error) {
	if err := policy.Authorize(principal, policy.CapViewAnnouncements); err != nil {
		return nil, err
	}
	views, err := s.announcements.ListForStudent(ctx, principal.UserID, 0)
	if err != nil {
		return nil, appErrors.Dependency(err, "list announcements")
	}
	return views, nil
}

// ListForCompany returns the caller's announcements.
func (s *AnnouncementService) ListForCompany(ctx context.Context, principal *models.JWTClaims) ([]models.AnnouncementView, error) {
	if err := policy.Authorize(principal, policy.CapAnnounce); err != nil {
		return nil, err
	}
	views, err := s.announcements.ListByCompany(ctx, principal.UserID)
	if err != nil {
		return nil, appErrors.Dependency(err, "list announcements")
	}
	return views, nil
}
