package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type companyRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Company, error)
	Upsert(ctx context.Context, company *models.Company) error
}

type companyJobRepository interface {
	Create(ctx context.Context, job *models.JobPosting) error
	FindByID(ctx context.Context, id string) (*models.JobWithCompany, error)
	ListByCompany(ctx context.Context, companyUserID string) ([]models.JobWithCompany, error)
	Delete(ctx context.Context, id, companyUserID string) ([]string, error)
}

// CompanyService serves the company surface: profile and job postings.
type CompanyService struct {
	companies companyRepository
	jobs      companyJobRepository
	colleges  collegeLister
	resumes   *ResumeService
	cache     *CacheService
	audit     auditRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// CompanyServiceDeps groups CompanyService collaborators.
type CompanyServiceDeps struct {
	Companies companyRepository
	Jobs      companyJobRepository
	Colleges  collegeLister
	Resumes   *ResumeService
	Cache     *CacheService
	Audit     auditRepository
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(deps CompanyServiceDeps, validate *validator.Validate, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CompanyService{
		companies: deps.Companies,
		jobs:      deps.Jobs,
		colleges:  deps.Colleges,
		resumes:   deps.Resumes,
		cache:     deps.Cache,
		audit:     deps.Audit,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Profile returns the caller's company profile.
func (s *CompanyService) Profile(ctx context.Context, principal *models.JWTClaims) (*models.Company, error) {
	if err := policy.Authorize(principal, policy.CapCompanyProfile); err != nil {
		return nil, err
	}
	company, err := s.companies.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "company profile not found", "load company profile")
	}
	return company, nil
}

// SaveProfile creates or updates the caller's company profile.
func (s *CompanyService) SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.CompanyProfileRequest) (*models.Company, error) {
	if err := policy.Authorize(principal, policy.CapCompanyProfile); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid company profile")
	}
	company := &models.Company{
		UserID:      principal.UserID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Industry:    req.Industry,
		Address:     req.Address,
	}
	if err := s.companies.Upsert(ctx, company); err != nil {
		s.logger.Error("failed to save company profile", zap.String("user_id", principal.UserID), zap.Error(err))
		return nil, appErrors.Dependency(err, "save company profile")
	}
	_ = s.cache.InvalidatePattern(ctx, collegeCompaniesKey("*"))
	return company, nil
}

// JobForm returns the choices offered when posting a job.
func (s *CompanyService) JobForm(ctx context.Context, principal *models.JWTClaims) (*dto.JobFormOptions, error) {
	if err := policy.Authorize(principal, policy.CapPostJobs); err != nil {
		return nil, err
	}
	directory, err := loadDirectory(ctx, s.colleges, s.cache)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(directory)+1)
	names = append(names, models.CollegeAllColleges)
	for _, entry := range directory {
		names = append(names, entry.Name)
	}
	return &dto.JobFormOptions{Types: models.JobTypes, Colleges: names}, nil
}

// CreateJob posts a job scoped to one college name or to every college.
func (s *CompanyService) CreateJob(ctx context.Context, principal *models.JWTClaims, req dto.CreateJobRequest) (*models.JobPosting, error) {
	if err := policy.Authorize(principal, policy.CapPostJobs); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid job posting")
	}
	if policy.IsUnassigned(req.CollegeName) {
		return nil, invalid("choose a college or All Colleges")
	}
	if !req.ApplyBy.After(s.now()) {
		return nil, invalid("apply-by date must be in the future")
	}

	collegeName := policy.DisplayCollegeName(req.CollegeName)
	if policy.IsAllColleges(collegeName) {
		collegeName = models.CollegeAllColleges
	}
	job := &models.JobPosting{
		CompanyUserID: principal.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		CollegeName:   collegeName,
		CollegeKey:    policy.CollegeKey(collegeName),
		Location:      req.Location,
		Duration:      req.Duration,
		Compensation:  req.Compensation,
		MinimumCPI:    req.MinimumCPI,
		GoogleFormURL: req.GoogleFormURL,
		ApplyBy:       req.ApplyBy.UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error("failed to create job", zap.String("company_user_id", principal.UserID), zap.Error(err))
		return nil, appErrors.Dependency(err, "create job")
	}
	s.invalidateCompanySummaries(ctx, job.CollegeKey)
	s.logger.Info("job posted", zap.String("job_id", job.ID), zap.String("college", job.CollegeName))
	return job, nil
}

// MyJobs lists the caller's jobs with their application counts.
func (s *CompanyService) MyJobs(ctx context.Context, principal *models.JWTClaims) ([]models.JobWithCompany, error) {
	if err := policy.Authorize(principal, policy.CapPostJobs); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, principal.UserID)
	if err != nil {
		return nil, appErrors.Dependency(err, "list jobs")
	}
	return jobs, nil
}

// DeleteJob removes one of the caller's jobs together with its applications
// and announcements, then deletes the application resumes.
func (s *CompanyService) DeleteJob(ctx context.Context, principal *models.JWTClaims, jobID string) error {
	if err := policy.Authorize(principal, policy.CapPostJobs); err != nil {
		return err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return notFoundOr(err, "job not found", "load job")
	}
	if job.CompanyUserID != principal.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "you can only delete your own jobs")
	}

	resumes, err := s.jobs.Delete(ctx, jobID, principal.UserID)
	if err != nil {
		return notFoundOr(err, "job not found", "delete job")
	}
	s.resumes.Remove(resumes...)
	s.invalidateCompanySummaries(ctx, job.CollegeKey)

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      principal,
		action:     models.AuditActionJobDelete,
		resource:   "job_posting",
		resourceID: jobID,
		oldValues:  map[string]interface{}{"title": job.Title, "applications": job.ApplicationCount},
	})
	s.logger.Info("job deleted", zap.String("job_id", jobID), zap.Int("applications", job.ApplicationCount))
	return nil
}

func (s *CompanyService) invalidateCompanySummaries(ctx context.Context, collegeKey string) {
	if collegeKey == policy.AllCollegesKey() {
		_ = s.cache.InvalidatePattern(ctx, collegeCompaniesKey("*"))
		return
	}
	_ = s.cache.Invalidate(ctx, collegeCompaniesKey(collegeKey))
}
