package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
)

const profileAnnouncementLimit = 10

type studentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
	Save(ctx context.Context, student *models.Student, purgeChat bool) (int64, error)
	CountApplications(ctx context.Context, userID string) (int, error)
}

type scopedJobRepository interface {
	ListByCollegeScope(ctx context.Context, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error)
}

type studentApplicationRepository interface {
	ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error)
}

type reviewedJobRepository interface {
	ListJobIDsByAuthor(ctx context.Context, authorUserID string) ([]string, error)
}

type studentAnnouncementRepository interface {
	ListForStudent(ctx context.Context, studentUserID string, limit int) ([]models.AnnouncementView, error)
}

// MembershipRevoker drops a user's live chat connections.
type MembershipRevoker interface {
	Evict(userID, reason string) int
}

// StudentServiceConfig toggles optional profile side effects.
type StudentServiceConfig struct {
	PurgeChatOnCollegeChange bool
}

// StudentService serves the student profile and job listing.
type StudentService struct {
	students      studentRepository
	jobs          scopedJobRepository
	applications  studentApplicationRepository
	feedback      reviewedJobRepository
	announcements studentAnnouncementRepository
	resumes       *ResumeService
	revoker       MembershipRevoker
	cache         *CacheService
	audit         auditRepository
	validator     *validator.Validate
	logger        *zap.Logger
	config        StudentServiceConfig
	now           func() time.Time
}

// StudentServiceDeps groups StudentService collaborators.
type StudentServiceDeps struct {
	Students      studentRepository
	Jobs          scopedJobRepository
	Applications  studentApplicationRepository
	Feedback      reviewedJobRepository
	Announcements studentAnnouncementRepository
	Resumes       *ResumeService
	Revoker       MembershipRevoker
	Cache         *CacheService
	Audit         auditRepository
}

// NewStudentService constructs a StudentService.
func NewStudentService(deps StudentServiceDeps, validate *validator.Validate, logger *zap.Logger, config StudentServiceConfig) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{
		students:      deps.Students,
		jobs:          deps.Jobs,
		applications:  deps.Applications,
		feedback:      deps.Feedback,
		announcements: deps.Announcements,
		resumes:       deps.Resumes,
		revoker:       deps.Revoker,
		cache:         deps.Cache,
		audit:         deps.Audit,
		validator:     validate,
		logger:        logger,
		config:        config,
		now:           time.Now,
	}
}

func (s *StudentService) loadStudent(ctx context.Context, principal *models.JWTClaims, capability policy.Capability) (*models.Student, error) {
	if err := policy.Authorize(principal, capability); err != nil {
		return nil, err
	}
	student, err := s.students.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "student profile not found", "load student profile")
	}
	return student, nil
}

// Profile returns the caller's profile, approval state, applied job count and
// latest visible announcements.
func (s *StudentService) Profile(ctx context.Context, principal *models.JWTClaims) (*dto.StudentProfileResponse, error) {
	student, err := s.loadStudent(ctx, principal, policy.CapStudentProfile)
	if err != nil {
		return nil, err
	}
	count, err := s.students.CountApplications(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "student profile not found", "count applications")
	}
	announcements, err := s.announcements.ListForStudent(ctx, principal.UserID, profileAnnouncementLimit)
	if err != nil {
		return nil, notFoundOr(err, "student profile not found", "load announcements")
	}
	if announcements == nil {
		announcements = []models.AnnouncementView{}
	}
	return &dto.StudentProfileResponse{
		Profile:       *student,
		Approval:      approvalStatus(student),
		AppliedCount:  count,
		Announcements: announcements,
	}, nil
}

// SaveProfile updates the caller's profile. A college change clears approval,
// revokes live chat membership and, when configured, purges the student's
// own chat history.
func (s *StudentService) SaveProfile(ctx context.Context, principal *models.JWTClaims, req dto.StudentProfileRequest, resume *dto.FileUpload) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid profile payload")
	}
	if !policy.StudentCollegeAllowed(req.CollegeName) {
		return nil, invalid(errAllCollegesNotACollege)
	}
	student, err := s.loadStudent(ctx, principal, policy.CapStudentProfile)
	if err != nil {
		return nil, err
	}

	// The previous resume stays on disk: submitted applications may still
	// reference it.
	var newResume string
	if resume != nil {
		newResume, err = s.resumes.Store(ResumeKindProfile, principal.UserID, resume)
		if err != nil {
			return nil, err
		}
		student.ResumePath = newResume
	}

	previousCollege := student.CollegeName
	changed := policy.ChangeCollege(student, req.CollegeName)
	student.Department = req.Department
	student.Year = req.Year
	student.CGPA = req.CGPA
	student.Skills = req.Skills

	purged, err := s.students.Save(ctx, student, changed && s.config.PurgeChatOnCollegeChange)
	if err != nil {
		if newResume != "" {
			s.resumes.Remove(newResume)
		}
		return nil, notFoundOr(err, "student profile not found", "save student profile")
	}

	if changed {
		evicted := 0
		if s.revoker != nil {
			evicted = s.revoker.Evict(principal.UserID, "college changed")
		}
		if err := s.cache.Invalidate(ctx, cacheKeyCollegeDirectory); err != nil {
			s.logger.Warn("failed to invalidate college directory cache", zap.String("user_id", principal.UserID), zap.Error(err))
		}
		recordAudit(ctx, s.audit, s.logger, auditEntry{
			actor:      principal,
			action:     models.AuditActionCollegeChange,
			resource:   "student",
			resourceID: student.ID,
			oldValues:  map[string]string{"college": previousCollege},
			newValues:  map[string]string{"college": student.CollegeName},
		})
		s.logger.Info("student college changed",
			zap.String("user_id", principal.UserID),
			zap.String("from", previousCollege),
			zap.String("to", student.CollegeName),
			zap.Int("connections_evicted", evicted),
		)
		if purged > 0 {
			recordAudit(ctx, s.audit, s.logger, auditEntry{
				actor:      principal,
				action:     models.AuditActionChatPurge,
				resource:   "chat_messages",
				resourceID: principal.UserID,
				newValues:  map[string]int64{"purged": purged},
			})
			s.logger.Info("chat history purged", zap.String("user_id", principal.UserID), zap.Int64("messages", purged))
		}
	}
	return student, nil
}

// ListJobs returns the jobs the approved caller is eligible for, newest
// first, annotated with application state.
func (s *StudentService) ListJobs(ctx context.Context, principal *models.JWTClaims) (*dto.StudentJobsResponse, error) {
	student, err := s.loadStudent(ctx, principal, policy.CapBrowseJobs)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireApproved(student); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByCollegeScope(ctx, student.CollegeKey, policy.AllCollegesKey())
	if err != nil {
		return nil, notFoundOr(err, "jobs not found", "list jobs")
	}
	apps, err := s.applications.ListByStudent(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "applications not found", "list applications")
	}
	reviewed, err := s.feedback.ListJobIDsByAuthor(ctx, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, "feedback not found", "list feedback")
	}

	byJob := make(map[string]models.Application, len(apps))
	for _, app := range apps {
		byJob[app.JobPostingID] = app
	}
	reviewedSet := make(map[string]struct{}, len(reviewed))
	for _, id := range reviewed {
		reviewedSet[id] = struct{}{}
	}

	now := s.now()
	eligible := policy.FilterEligible(jobs, student)
	views := make([]dto.StudentJobView, 0, len(eligible))
	for _, job := range eligible {
		view := dto.StudentJobView{
			JobWithCompany: job,
			Actionable:     policy.Actionable(&job.JobPosting, apps, now),
			DeadlinePassed: policy.DeadlinePassed(&job.JobPosting, now),
		}
		if app, ok := byJob[job.ID]; ok {
			view.ApplicationID = app.ID
			view.ApplicationStatus = app.Status
		}
		_, view.FeedbackGiven = reviewedSet[job.ID]
		views = append(views, view)
	}
	return &dto.StudentJobsResponse{Jobs: views, HireLocked: policy.HireLocked(apps)}, nil
}

func approvalStatus(student *models.Student) dto.ApprovalStatus {
	return dto.ApprovalStatus{
		State:   string(policy.StudentApproval(student)),
		Message: policy.ApprovalMessage(student),
	}
}
