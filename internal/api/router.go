package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskforge/task-system/docs"
	"github.com/taskforge/task-system/internal/api/handler"
	"github.com/taskforge/task-system/internal/api/middleware"
	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/service"
	"github.com/taskforge/task-system/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/task-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskforge/task-system/internal/infrastructure/http/handlers"
	"github.com/taskforge/task-system/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered. It also
// starts the activity dispatcher; its workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskforge"))

	// --- Dependencies ---
	userRepo := mongodb.NewAuthRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb)
	dedup := redisdb.NewDedupChecker(rdb)

	authService := service.NewAuthService(userRepo, tokens, limiter, log)
	projectService := service.NewProjectService(projectRepo, log)
	activityService := service.NewActivityService(activityRepo, taskRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	taskService := service.NewTaskService(taskRepo, projectRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService, activityService)

	authn := middleware.Auth(tokens)
	requireManager := middleware.RequireRole(domain.RoleManager)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	v1 := e.Group("/v1", authn)
	v1.POST("/projects", projectHandler.Create, requireManager)
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.DELETE("/projects/:id", projectHandler.Delete, requireAdmin)
	v1.POST("/projects/:id/tasks", taskHandler.Create, requireManager)
	v1.GET("/projects/:id/tasks", taskHandler.ListByProject)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.GET("/tasks/:id/activity", taskHandler.Activity)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
