package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/handler"
	"github.com/noah-isme/placement-portal-api/internal/middleware"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/websocket"
	"github.com/noah-isme/placement-portal-api/pkg/config"
	"github.com/noah-isme/placement-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/placement-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/placement-portal-api/pkg/middleware/requestid"
)

// NewRouter mounts every HTTP route on a new engine.
func NewRouter(cfg *config.Config, deps *Dependencies, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	ops := handler.NewMetricsHandler(deps.Metrics, deps.DB)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	studentHandler := handler.NewStudentHandler(deps.Students, deps.Applications, deps.Announcements)
	companyHandler := handler.NewCompanyHandler(deps.Companies, deps.Applications, deps.Announcements, deps.Feedback)
	collegeHandler := handler.NewCollegeHandler(deps.Colleges, deps.Feedback)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)
	chatHandler := handler.NewChatHandler(deps.Chat)
	resumeHandler := handler.NewResumeHandler(deps.Resumes)
	wsHandler := websocket.NewHandler(deps.Hub, deps.Chat, cfg.CORS.AllowedOrigins, logr)

	api := r.Group(cfg.APIPrefix)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)
	api.GET("/colleges", collegeHandler.Directory)
	api.GET(resumeDownloadPath, resumeHandler.Download)

	authed := api.Group("")
	authed.Use(middleware.JWT(deps.Auth))
	authed.POST("/logout", authHandler.Logout)

	student := authed.Group("")
	student.Use(middleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/student/profile", studentHandler.Profile)
		student.POST("/student/profile", studentHandler.SaveProfile)
		student.GET("/student/jobs", studentHandler.Jobs)
		student.GET("/student/apply/:jobId", studentHandler.ApplyForm)
		student.POST("/student/apply/:jobId", studentHandler.Apply)
		student.GET("/student/announcements", studentHandler.Announcements)
		student.POST("/studentfeedback/create", feedbackHandler.Student)

		student.GET("/chat", chatHandler.History)
		student.POST("/chat/send", chatHandler.Send)
		student.POST("/chat/delete/:id", chatHandler.Delete)
		student.GET("/chat/ws", wsHandler.Serve)
	}

	company := authed.Group("")
	company.Use(middleware.RequireRoles(models.RoleCompany))
	{
		company.GET("/company/profile", companyHandler.Profile)
		company.POST("/company/profile", companyHandler.SaveProfile)
		company.GET("/company/createjob", companyHandler.JobForm)
		company.POST("/company/createjob", companyHandler.CreateJob)
		company.GET("/company/myjobs", companyHandler.MyJobs)
		company.POST("/company/deletejob/:id", companyHandler.DeleteJob)
		company.GET("/company/applications/:jobId", companyHandler.Applications)
		company.GET("/company/applicationdetails/:id", companyHandler.ApplicationDetail)
		company.POST("/company/hire/:id", companyHandler.Hire)
		company.POST("/company/reject/:id", companyHandler.Reject)
		company.POST("/company/createannouncement/:jobId", companyHandler.CreateAnnouncement)
		company.GET("/company/announcements", companyHandler.Announcements)
		company.GET("/company/feedback", companyHandler.Feedback)
		company.POST("/companyfeedback/create", feedbackHandler.Company)
	}

	college := authed.Group("/college")
	college.Use(middleware.RequireRoles(models.RoleCollege))
	{
		college.GET("/profile", collegeHandler.Profile)
		college.POST("/profile", collegeHandler.SaveProfile)
		college.GET("/students", collegeHandler.Students)
		college.GET("/students/export", middleware.Audit(deps.Audit, models.AuditActionRosterExport, "student_roster"), collegeHandler.ExportStudents)
		college.POST("/approvestudent/:id", collegeHandler.Approve)
		college.GET("/companies", collegeHandler.Companies)
		college.GET("/companies/:companyId/jobs", collegeHandler.CompanyJobs)
		college.GET("/jobs/:id", collegeHandler.Job)
		college.GET("/feedback", collegeHandler.Feedback)
	}

	return r
}
