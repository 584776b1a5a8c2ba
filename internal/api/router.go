package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luct/reporting-system/internal/api/handler"
	"github.com/luct/reporting-system/internal/api/middleware"
	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/service"
	mongodb "github.com/luct/reporting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/luct/reporting-system/internal/infrastructure/db/redis"
)

const tokenTTL = time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reporting"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	directoryRepo := mongodb.NewDirectoryRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	summaryCache := redisdb.NewSummaryCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, directoryRepo, jwtSecret, tokenTTL, log)
	directoryService := service.NewDirectoryService(directoryRepo, userRepo)
	reportService := service.NewReportService(reportRepo, directoryRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, directoryRepo, userRepo, log)
	ratingService := service.NewRatingService(ratingRepo, userRepo, summaryCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	reportHandler := handler.NewReportHandler(reportService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	dashboardHandler := handler.NewDashboardHandler(reportService, ratingService)

	auth := middleware.Auth(jwtSecret)

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/faculties", directoryHandler.Faculties)
	e.GET("/classes", directoryHandler.Classes)

	// --- Directory (any authenticated principal) ---
	e.GET("/courses", directoryHandler.Courses, auth)
	e.GET("/lecturers", directoryHandler.Lecturers, auth)

	// --- Reports ---
	e.POST("/reports", reportHandler.Create, auth, middleware.RBAC(domain.RoleLecturer))
	e.GET("/reports", reportHandler.List, auth)
	e.PUT("/reports/:id", reportHandler.Update, auth, middleware.RBAC(domain.RoleLecturer))
	e.DELETE("/reports/:id", reportHandler.Delete, auth, middleware.RBAC(domain.RoleLecturer))
	e.PUT("/reports/:id/feedback", reportHandler.AttachFeedback, auth, middleware.RBAC(domain.RolePRL))

	// --- Assignments ---
	e.POST("/assign-course", assignmentHandler.Assign, auth, middleware.RBAC(domain.RolePL))
	e.GET("/assignments", assignmentHandler.List, auth, middleware.RBAC(domain.RolePL, domain.RolePRL, domain.RoleLecturer))
	e.DELETE("/assignments/:id", assignmentHandler.Delete, auth, middleware.RBAC(domain.RolePL))

	// --- Ratings ---
	e.POST("/rate", ratingHandler.Submit, auth, middleware.RBAC(domain.RoleStudent))
	e.DELETE("/rate/:id", ratingHandler.Delete, auth, middleware.RBAC(domain.RoleStudent))
	e.GET("/ratings", ratingHandler.List, auth)
	e.GET("/ratings-summary", ratingHandler.Summary, auth, middleware.RBAC(domain.RolePRL))

	// --- Dashboards ---
	e.GET("/dashboard/lecturer", dashboardHandler.Lecturer, auth, middleware.RBAC(domain.RoleLecturer))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
