package server

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/repository"
	"github.com/noah-isme/placement-portal-api/internal/service"
	"github.com/noah-isme/placement-portal-api/internal/websocket"
	"github.com/noah-isme/placement-portal-api/pkg/config"
	"github.com/noah-isme/placement-portal-api/pkg/jobs"
	"github.com/noah-isme/placement-portal-api/pkg/storage"
)

const resumeDownloadPath = "/files/resumes"

// Dependencies is the wired service graph.
type Dependencies struct {
	DB      *sqlx.DB
	Metrics *service.MetricsService
	Audit   *repository.AuditRepository

	Auth          *service.AuthService
	Students      *service.StudentService
	Applications  *service.ApplicationService
	Colleges      *service.CollegeService
	Companies     *service.CompanyService
	Announcements *service.AnnouncementService
	Feedback      *service.FeedbackService
	Chat          *service.ChatService
	Resumes       *service.ResumeService

	Hub          *websocket.Hub
	CleanupQueue *jobs.Queue
}

// BuildDependencies wires repositories and services. A nil redis client
// disables caching.
func BuildDependencies(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logger *zap.Logger) (*Dependencies, error) {
	validate := validator.New()
	metrics := service.NewMetricsService()

	users := repository.NewUserRepository(db)
	audit := repository.NewAuditRepository(db)
	students := repository.NewStudentRepository(db)
	colleges := repository.NewCollegeRepository(db)
	companies := repository.NewCompanyRepository(db)
	jobPostings := repository.NewJobRepository(db)
	applications := repository.NewApplicationRepository(db)
	announcements := repository.NewAnnouncementRepository(db)
	feedback := repository.NewFeedbackRepository(db)
	chat := repository.NewChatRepository(db)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logger)
	}
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Redis.CacheTTL, logger, cfg.Redis.Enabled && redisClient != nil)

	store, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL)
	resumes := service.NewResumeService(store, signer, cfg.Storage.MaxResumeBytes, cfg.APIPrefix+resumeDownloadPath, logger)
	cleanup := jobs.NewQueue("resume-cleanup", resumes.HandleCleanup, jobs.QueueConfig{
		Workers:     cfg.Jobs.CleanupWorkers,
		Capacity:    64,
		MaxAttempts: cfg.Jobs.CleanupMaxAttempts,
		Backoff:     cfg.Jobs.CleanupBackoff,
		Logger:      logger,
	})
	resumes.UseCleanupQueue(cleanup)

	chatService := service.NewChatService(chat, students, metrics, logger, service.ChatServiceConfig{
		HistoryLimit:     cfg.Chat.HistoryLimit,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
	})
	hub := websocket.NewHub(metrics, logger)
	chatService.SetBroadcaster(hub)

	deps := &Dependencies{
		DB:      db,
		Metrics: metrics,
		Audit:   audit,
		Auth: service.NewAuthService(users, audit, cache, validate, logger, service.AuthConfig{
			AccessTokenSecret:  cfg.JWT.Secret,
			AccessTokenExpiry:  cfg.JWT.Expiration,
			RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
			Issuer:             "placement-portal",
		}),
		Students: service.NewStudentService(service.StudentServiceDeps{
			Students:      students,
			Jobs:          jobPostings,
			Applications:  applications,
			Feedback:      feedback,
			Announcements: announcements,
			Resumes:       resumes,
			Revoker:       hub,
			Cache:         cache,
			Audit:         audit,
		}, validate, logger, service.StudentServiceConfig{PurgeChatOnCollegeChange: cfg.Chat.PurgeOnCollegeChange}),
		Applications: service.NewApplicationService(service.ApplicationServiceDeps{
			Applications: applications,
			Jobs:         jobPostings,
			Students:     students,
			Resumes:      resumes,
			Metrics:      metrics,
			Audit:        audit,
		}, validate, logger),
		Colleges: service.NewCollegeService(service.CollegeServiceDeps{
			Colleges:  colleges,
			Students:  students,
			Companies: companies,
			Jobs:      jobPostings,
			Resumes:   resumes,
			Cache:     cache,
			Audit:     audit,
		}, validate, logger),
		Companies: service.NewCompanyService(service.CompanyServiceDeps{
			Companies: companies,
			Jobs:      jobPostings,
			Colleges:  colleges,
			Resumes:   resumes,
			Cache:     cache,
			Audit:     audit,
		}, validate, logger),
		Announcements: service.NewAnnouncementService(announcements, jobPostings, audit, validate, logger),
		Feedback: service.NewFeedbackService(service.FeedbackServiceDeps{
			Feedback:     feedback,
			Applications: applications,
			Jobs:         jobPostings,
			Colleges:     colleges,
		}, validate, logger),
		Chat:         chatService,
		Resumes:      resumes,
		Hub:          hub,
		CleanupQueue: cleanup,
	}
	return deps, nil
}

// Start launches background workers.
func (d *Dependencies) Start(ctx context.Context) {
	d.CleanupQueue.Start(ctx)
}

// Stop drains background workers.
func (d *Dependencies) Stop() {
	d.CleanupQueue.Stop()
}
