package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/attendance"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/auth"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/issue"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/localstate"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/location"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/message"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/messaging/kafka"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/middleware"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/project"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/rbac"
	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	local *localstate.Client,
) (*attendance.Manager, error) {
	logger := zap.L()

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	issueRepo := issue.NewRepository(gormDB)
	messageRepo := message.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// Session writes and their outbox events commit together; only when
	// Postgres itself is unreachable does the local store take over.
	attendanceRepo := attendance.NewFallbackRepository(
		attendance.NewEventedRepository(db, attendance.NewRepository(gormDB), outboxRepo, logger),
		local,
		logger,
	)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(
		filepath.Join("internal", "rbac", "model.conf"),
		filepath.Join("internal", "rbac", "policy.csv"),
	)
	if err != nil {
		return nil, err
	}

	// --- Location ---
	consentStore := location.NewConsentStore(rdb)
	locationProvider := location.NewHTTPProvider(os.Getenv("LOCATION_AGENT_URL"))
	locationService := location.NewService(locationProvider, consentStore)

	// --- Attendance Core ---
	manager := attendance.NewManager(attendanceRepo, local, logger)

	// --- Services ---
	userService := user.NewService(db, userRepo, outboxRepo)
	authService := auth.NewService(userRepo)
	attendanceService := attendance.NewService(
		manager,
		attendanceRepo,
		locationService,
		consentStore,
	)
	projectService := project.NewService(projectRepo)
	issueService := issue.NewService(issueRepo, projectService)
	messageService := message.NewService(messageRepo, userService)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	projectHandler := project.NewHandler(projectService)
	issueHandler := issue.NewHandler(issueService)
	messageHandler := message.NewHandler(messageService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
	)
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, enforcer)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer)
		project.RegisterRoutes(api, projectHandler, enforcer)
		issue.RegisterRoutes(api, issueHandler, enforcer)
		message.RegisterRoutes(api, messageHandler, enforcer)
	}

	return manager, nil
}
