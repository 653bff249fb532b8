package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	"github.com/noah-isme/placement-portal-api/pkg/database"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type applicationRepository interface {
	FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error)
	ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.ApplicationDetail, error)
	Upsert(ctx context.Context, app *models.Application) (bool, error)
	UpdateStatus(ctx context.Context, id, studentUserID string, to models.ApplicationStatus) (*models.Application, error)
}

type jobFinder interface {
	FindByID(ctx context.Context, id string) (*models.JobWithCompany, error)
}

type studentFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

// ApplicationService runs the application lifecycle: student submissions
// and company decisions.
type ApplicationService struct {
	applications applicationRepository
	jobs         jobFinder
	students     studentFinder
	resumes      *ResumeService
	metrics      *MetricsService
	audit        auditRepository
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// ApplicationServiceDeps groups ApplicationService collaborators.
type ApplicationServiceDeps struct {
	Applications applicationRepository
	Jobs         jobFinder
	Students     studentFinder
	Resumes      *ResumeService
	Metrics      *MetricsService
	Audit        auditRepository
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(deps ApplicationServiceDeps, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ApplicationService{
		applications: deps.Applications,
		jobs:         deps.Jobs,
		students:     deps.Students,
		resumes:      deps.Resumes,
		metrics:      deps.Metrics,
		audit:        deps.Audit,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// applyContext loads the approved student and a job visible to them.
func (s *ApplicationService) applyContext(ctx context.Context, principal *models.JWTClaims, jobID string) (*models.Student, *models.JobWithCompany, error) {
	if err := policy.Authorize(principal, policy.CapApply); err != nil {
		return nil, nil, err
	}
	student, err := s.students.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, nil, notFoundOr(err, "student profile not found", "load student profile")
	}
	if err := policy.RequireApproved(student); err != nil {
		return nil, nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, notFoundOr(err, "job not found", "load job")
	}
	if !policy.JobVisibleToStudent(&job.JobPosting, student) {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "this job is not open to you")
	}
	return student, job, nil
}

// ApplyForm returns the job with the form prefilled from the previous
// application, or from the profile on a first visit.
func (s *ApplicationService) ApplyForm(ctx context.Context, principal *models.JWTClaims, jobID string) (*dto.ApplyFormResponse, error) {
	student, job, err := s.applyContext(ctx, principal, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByStudent(ctx, principal.UserID)
	if err != nil {
		return nil, appErrors.Dependency(err, "list applications")
	}

	resp := &dto.ApplyFormResponse{
		Job: *job,
		Form: dto.ApplyRequest{
			ApplicantName:  principal.Name,
			ApplicantEmail: principal.Email,
			CollegeID:      student.StudentID,
		},
		HasResume: student.ResumePath != "",
	}
	if existing := findApplication(apps, jobID); existing != nil {
		resp.Form = dto.ApplyRequest{
			ApplicantName:  existing.ApplicantName,
			ApplicantEmail: existing.ApplicantEmail,
			CollegeID:      existing.CollegeID,
			LinkedInURL:    existing.LinkedInURL,
			GithubURL:      existing.GithubURL,
			Gender:         existing.Gender,
			CoverLetter:    existing.CoverLetter,
			TermsAccepted:  existing.TermsAccepted,
		}
		resp.HasResume = resp.HasResume || existing.ResumePath != ""
		resp.ApplicationStatus = existing.Status
	}
	return resp, nil
}

// Apply creates or updates the caller's application to the job. The status of
// an existing application is never changed here.
func (s *ApplicationService) Apply(ctx context.Context, principal *models.JWTClaims, jobID string, req dto.ApplyRequest, resume *dto.FileUpload) (*dto.ApplyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid application form")
	}
	if !req.TermsAccepted {
		return nil, invalid("you must accept the terms and conditions")
	}
	student, job, err := s.applyContext(ctx, principal, jobID)
	if err != nil {
		return nil, err
	}
	if policy.DeadlinePassed(&job.JobPosting, s.now()) {
		return nil, invalid("the application deadline has passed")
	}

	apps, err := s.applications.ListByStudent(ctx, principal.UserID)
	if err != nil {
		return nil, appErrors.Dependency(err, "list applications")
	}
	if policy.HiredElsewhere(apps, jobID) {
		s.metrics.RecordApplication(MetricActionHireLock)
		return nil, hiredElsewhereError()
	}
	existing := findApplication(apps, jobID)

	resumePath := student.ResumePath
	if existing != nil && existing.ResumePath != "" {
		resumePath = existing.ResumePath
	}
	var newResume string
	if resume != nil {
		newResume, err = s.resumes.Store(ResumeKindApplication, principal.UserID, resume)
		if err != nil {
			return nil, err
		}
		resumePath = newResume
	}

	app := &models.Application{
		JobPostingID:   jobID,
		StudentUserID:  principal.UserID,
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		CollegeID:      req.CollegeID,
		LinkedInURL:    req.LinkedInURL,
		GithubURL:      req.GithubURL,
		Gender:         req.Gender,
		CoverLetter:    req.CoverLetter,
		ResumePath:     resumePath,
		TermsAccepted:  req.TermsAccepted,
	}
	if existing != nil {
		app.ID = existing.ID
	}

	created, err := s.applications.Upsert(ctx, app)
	if err != nil {
		if newResume != "" {
			s.resumes.Remove(newResume)
		}
		switch {
		case errors.Is(err, repository.ErrHiredElsewhere):
			s.metrics.RecordApplication(MetricActionHireLock)
			return nil, hiredElsewhereError()
		case errors.Is(err, repository.ErrNoStudentProfile):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		case database.IsUniqueViolation(err):
			return nil, appErrors.Clone(appErrors.ErrConflict, "application already submitted")
		}
		s.logger.Error("failed to store application", zap.String("job_id", jobID), zap.Error(err))
		return nil, appErrors.Dependency(err, "store application")
	}

	if newResume != "" && existing != nil && existing.ResumePath != "" && existing.ResumePath != student.ResumePath {
		s.resumes.Remove(existing.ResumePath)
	}

	action := MetricActionReapply
	if created {
		action = MetricActionApply
	}
	s.metrics.RecordApplication(action)
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", jobID),
		zap.Bool("created", created),
	)
	return &dto.ApplyResponse{Application: *app, Created: created}, nil
}

// SetStatus records the owning company's decision on a pending application.
func (s *ApplicationService) SetStatus(ctx context.Context, principal *models.JWTClaims, applicationID string, to models.ApplicationStatus) (*models.Application, error) {
	if err := policy.Authorize(principal, policy.CapReviewApplications); err != nil {
		return nil, err
	}
	detail, err := s.ownedApplication(ctx, principal, applicationID)
	if err != nil {
		return nil, err
	}
	if err := policy.ValidateTransition(detail.Status, to); err != nil {
		return nil, err
	}

	app, err := s.applications.UpdateStatus(ctx, applicationID, detail.StudentUserID, to)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusFinal):
			return nil, appErrors.Clone(appErrors.ErrConflict, "application has already been decided")
		case errors.Is(err, repository.ErrHiredElsewhere):
			s.metrics.RecordApplication(MetricActionHireLock)
			return nil, appErrors.Clone(appErrors.ErrConflict, "student is already hired for another job")
		case errors.Is(err, repository.ErrNoStudentProfile):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		s.logger.Error("failed to update application status", zap.String("application_id", applicationID), zap.Error(err))
		return nil, appErrors.Dependency(err, "update application status")
	}

	action, metric := models.AuditActionReject, MetricActionReject
	if to == models.ApplicationHired {
		action, metric = models.AuditActionHire, MetricActionHire
	}
	s.metrics.RecordApplication(metric)
	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      principal,
		action:     action,
		resource:   "application",
		resourceID: applicationID,
		oldValues:  map[string]string{"status": string(detail.Status)},
		newValues:  map[string]string{"status": string(to)},
	})
	s.logger.Info("application decided",
		zap.String("application_id", applicationID),
		zap.String("job_id", detail.JobPostingID),
		zap.String("status", string(to)),
	)
	return app, nil
}

// ListForJob returns the applications to one of the caller's jobs with
// signed resume links.
func (s *ApplicationService) ListForJob(ctx context.Context, principal *models.JWTClaims, jobID string) (*dto.CompanyApplicationsResponse, error) {
	if err := policy.Authorize(principal, policy.CapReviewApplications); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job not found", "load job")
	}
	if job.CompanyUserID != principal.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only view applications to your own jobs")
	}
	details, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, appErrors.Dependency(err, "list applications")
	}
	views := make([]dto.CompanyApplicationView, 0, len(details))
	for _, d := range details {
		views = append(views, dto.CompanyApplicationView{
			ApplicationDetail: d,
			ResumeURL:         s.resumes.DownloadURL(principal.UserID, d.ResumePath),
		})
	}
	return &dto.CompanyApplicationsResponse{Job: *job, Applications: views}, nil
}

// Detail returns one application to the caller's jobs.
func (s *ApplicationService) Detail(ctx context.Context, principal *models.JWTClaims, applicationID string) (*dto.CompanyApplicationView, error) {
	if err := policy.Authorize(principal, policy.CapReviewApplications); err != nil {
		return nil, err
	}
	detail, err := s.ownedApplication(ctx, principal, applicationID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyApplicationView{
		ApplicationDetail: *detail,
		ResumeURL:         s.resumes.DownloadURL(principal.UserID, detail.ResumePath),
	}, nil
}

func (s *ApplicationService) ownedApplication(ctx context.Context, principal *models.JWTClaims, applicationID string) (*models.ApplicationDetail, error) {
	detail, err := s.applications.FindDetail(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "load application")
	}
	if detail.CompanyUserID != principal.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you can only manage applications to your own jobs")
	}
	return detail, nil
}

func findApplication(apps []models.Application, jobID string) *models.Application {
	for i := range apps {
		if apps[i].JobPostingID == jobID {
			return &apps[i]
		}
	}
	return nil
}

func hiredElsewhereError() *appErrors.Error {
	return appErrors.Clone(appErrors.ErrConflict, "you have already been hired for another job")
}
