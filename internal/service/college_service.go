package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/export"
)

type collegeRepository interface {
	FindByOwner(ctx context.Context, userID string) (*models.College, error)
	List(ctx context.Context) ([]models.College, error)
	SaveOwned(ctx context.Context, college *models.College) error
}

type collegeLister interface {
	List(ctx context.Context) ([]models.College, error)
}

type rosterRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Approve(ctx context.Context, id, collegeKey string) error
	Roster(ctx context.Context, filter models.StudentRosterFilter) ([]models.StudentRosterEntry, error)
}

type companySummaryRepository interface {
	SummariesForCollege(ctx context.Context, collegeKey, allCollegesKey string) ([]models.CompanySummary, error)
}

type collegeJobRepository interface {
	FindByID(ctx context.Context, id string) (*models.JobWithCompany, error)
	ListByCompanyForCollege(ctx context.Context, companyUserID, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error)
}

// RosterExport is a rendered roster file.
type RosterExport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CollegeService serves the college surface: profile, roster, approvals and
// the companies recruiting at the college.
type CollegeService struct {
	colleges  collegeRepository
	students  rosterRepository
	companies companySummaryRepository
	jobs      collegeJobRepository
	resumes   *ResumeService
	cache     *CacheService
	audit     auditRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// CollegeServiceDeps groups CollegeService collaborators.
type CollegeServiceDeps struct {
	Colleges  collegeRepository
	Students  rosterRepository
	Companies companySummaryRepository
	Jobs      collegeJobRepository
	Resumes   *ResumeService
	Cache     *CacheService
	Audit     auditRepository
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(deps CollegeServiceDeps, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CollegeService{
		colleges:  deps.Colleges,
		students:  deps.Students,
		companies: deps.Companies,
		jobs:      deps.Jobs,
		resumes:   deps.Resumes,
		cache:     deps.Cache,
		audit:     deps.Audit,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Profile returns the college owned by the caller.
func (s *CollegeService) Profile(ctx context.Context, principal *models.JWTClaims) (*models.College, error) {
	if err := policy.Authorize(principal, policy.CapCollegeProfile); err != nil {
		return nil, err
	}
	return s.ownedCollege(ctx, principal)
}

// SaveProfile creates or updates the caller's college. A name already owned
// by another college user is a conflict.
func (s *CollegeService) SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.CollegeProfileRequest) (*models.College, error) {
	if err := policy.Authorize(principal, policy.CapCollegeProfile); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid college profile")
	}
	name := strings.TrimSpace(req.Name)
	if policy.IsUnassigned(name) || policy.IsAllColleges(name) {
		return nil, invalid("college name is reserved")
	}

	college, err := s.colleges.FindByOwner(ctx, principal.UserID)
	if err != nil {
		if !isNoRows(err) {
			return nil, appErrors.Dependency(err, "load college")
		}
		ownerID := principal.UserID
		college = &models.College{OwnerUserID: &ownerID}
	}
	college.Name = name
	college.NameKey = policy.CollegeKey(name)
	college.City = req.City
	college.State = req.State
	college.WebsiteURL = req.WebsiteURL

	if err := s.colleges.SaveOwned(ctx, college); err != nil {
		if errors.Is(err, repository.ErrCollegeClaimed) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "college is already managed by another account")
		}
		s.logger.Error("failed to save college", zap.String("user_id", principal.UserID), zap.Error(err))
		return nil, appErrors.Dependency(err, "save college")
	}
	_ = s.cache.Invalidate(ctx, cacheKeyCollegeDirectory)
	return college, nil
}

// Directory lists every known college for registration and profile pickers.
func (s *CollegeService) Directory(ctx context.Context) ([]dto.CollegeDirectoryEntry, error) {
	return loadDirectory(ctx, s.colleges, s.cache)
}

// Roster lists the owned college's students, optionally narrowed to one
// department.
func (s *CollegeService) Roster(ctx context.Context, principal *models.JWTClaims, query dto.RosterQuery) ([]dto.RosterEntryView, error) {
	_, views, err := s.roster(ctx, principal, query)
	return views, err
}

func (s *CollegeService) roster(ctx context.Context, principal *models.JWTClaims, query dto.RosterQuery) (*models.College, []dto.RosterEntryView, error) {
	if err := policy.Authorize(principal, policy.CapViewRoster); err != nil {
		return nil, nil, err
	}
	college, err := s.ownedCollege(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(query.College) != "" && !policy.SameCollege(query.College, college.Name) {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "you can only view students of your own college")
	}

	entries, err := s.students.Roster(ctx, models.StudentRosterFilter{
		CollegeKey: college.NameKey,
		Department: strings.TrimSpace(query.Department),
	})
	if err != nil {
		return nil, nil, appErrors.Dependency(err, "list students")
	}
	views := make([]dto.RosterEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, dto.RosterEntryView{
			StudentRosterEntry: entry,
			ResumeURL:          s.resumes.DownloadURL(principal.UserID, entry.ResumePath),
		})
	}
	return college, views, nil
}

// ExportRoster renders the roster as CSV or PDF.
func (s *CollegeService) ExportRoster(ctx context.Context, principal *models.JWTClaims, query dto.RosterQuery, format export.Format) (*RosterExport, error) {
	var renderer interface {
		Render(export.Dataset) ([]byte, error)
	}
	switch format {
	case export.FormatCSV:
		renderer = export.NewCSVExporter()
	case export.FormatPDF:
		renderer = export.NewPDFExporter()
	default:
		return nil, invalid("format must be csv or pdf")
	}

	college, entries, err := s.roster(ctx, principal, query)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(rosterDataset(college.Name, entries))
	if err != nil {
		return nil, appErrors.Dependency(err, "render roster")
	}
	return &RosterExport{
		Filename:    fmt.Sprintf("roster_%s.%s", s.now().UTC().Format("20060102"), format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func rosterDataset(collegeName string, entries []dto.RosterEntryView) export.Dataset {
	data := export.Dataset{
		Title:   collegeName + " students",
		Headers: []string{"Student ID", "Name", "Email", "Department", "Year", "CGPA", "Approved"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		approved := "No"
		if e.IsApproved {
			approved = "Yes"
		}
		data.Rows = append(data.Rows, []string{
			e.StudentID,
			strings.TrimSpace(e.FirstName + " " + e.LastName),
			e.Email,
			e.Department,
			strconv.Itoa(e.Year),
			strconv.FormatFloat(e.CGPA, 'f', 2, 64),
			approved,
		})
	}
	return data
}

// Approve confirms a student who chose the caller's college. Approving an
// approved student is a no-op.
func (s *CollegeService) Approve(ctx context.Context, principal *models.JWTClaims, studentID string) (*models.Student, error) {
	if err := policy.Authorize(principal, policy.CapApproveStudents); err != nil {
		return nil, err
	}
	college, err := s.colleges.FindByOwner(ctx, principal.UserID)
	if err != nil && !isNoRows(err) {
		return nil, appErrors.Dependency(err, "load college")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, "student not found", "load student")
	}
	if err := policy.CanApprove(principal.UserID, college, student); err != nil {
		return nil, err
	}
	if student.IsApproved {
		return student, nil
	}

	if err := s.students.Approve(ctx, student.ID, college.NameKey); err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student has changed college")
		}
		return nil, appErrors.Dependency(err, "approve student")
	}
	student.IsApproved = true

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      principal,
		action:     models.AuditActionApprove,
		resource:   "student",
		resourceID: student.ID,
		newValues:  map[string]interface{}{"college": college.Name, "approved": true},
	})
	s.logger.Info("student approved",
		zap.String("student_id", student.ID),
		zap.String("college", college.Name),
		zap.String("approved_by", principal.UserID),
	)
	return student, nil
}

// Companies summarises the companies with jobs open to the owned college.
func (s *CollegeService) Companies(ctx context.Context, principal *models.JWTClaims) ([]models.CompanySummary, error) {
	if err := policy.Authorize(principal, policy.CapViewCollegeCompanies); err != nil {
		return nil, err
	}
	college, err := s.ownedCollege(ctx, principal)
	if err != nil {
		return nil, err
	}

	key := collegeCompaniesKey(college.NameKey)
	var cached []models.CompanySummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	summaries, err := s.companies.SummariesForCollege(ctx, college.NameKey, policy.AllCollegesKey())
	if err != nil {
		return nil, appErrors.Dependency(err, "list companies")
	}
	_ = s.cache.Set(ctx, key, summaries, 0)
	return summaries, nil
}

// CompanyJobs lists one company's jobs open to the owned college.
func (s *CollegeService) CompanyJobs(ctx context.Context, principal *models.JWTClaims, companyUserID string) ([]models.JobWithCompany, error) {
	if err := policy.Authorize(principal, policy.CapViewCollegeCompanies); err != nil {
		return nil, err
	}
	college, err := s.ownedCollege(ctx, principal)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompanyForCollege(ctx, companyUserID, college.NameKey, policy.AllCollegesKey())
	if err != nil {
		return nil, appErrors.Dependency(err, "list jobs")
	}
	return jobs, nil
}

// Job returns a job open to the owned college.
func (s *CollegeService) Job(ctx context.Context, principal *models.JWTClaims, jobID string) (*models.JobWithCompany, error) {
	if err := policy.Authorize(principal, policy.CapViewCollegeCompanies); err != nil {
		return nil, err
	}
	college, err := s.ownedCollege(ctx, principal)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job not found", "load job")
	}
	if !policy.InCollegeScope(&job.JobPosting, college.NameKey) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}
	return job, nil
}

func (s *CollegeService) ownedCollege(ctx context.Context, principal *models.JWTClaims) (*models.College, error) {
	college, err := s.colleges.FindByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "set up your college profile first", "load college")
	}
	return college, nil
}

// loadDirectory serves the college directory cache-aside.
func loadDirectory(ctx context.Context, colleges collegeLister, cache *CacheService) ([]dto.CollegeDirectoryEntry, error) {
	var cached []dto.CollegeDirectoryEntry
	if hit, _ := cache.Get(ctx, cacheKeyCollegeDirectory, &cached); hit {
		return cached, nil
	}
	list, err := colleges.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "list colleges")
	}
	entries := make([]dto.CollegeDirectoryEntry, 0, len(list))
	for _, c := range list {
		entries = append(entries, dto.CollegeDirectoryEntry{
			ID:      c.ID,
			Name:    c.Name,
			City:    c.City,
			State:   c.State,
			Claimed: c.Claimed(),
		})
	}
	_ = cache.Set(ctx, cacheKeyCollegeDirectory, entries, 0)
	return entries, nil
}
