package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/biometric"
	"github.com/noah-isme/edupro-go-api/internal/config"
	"github.com/noah-isme/edupro-go-api/internal/handler"
	"github.com/noah-isme/edupro-go-api/internal/middleware"
	"github.com/noah-isme/edupro-go-api/internal/observability"
	"github.com/noah-isme/edupro-go-api/internal/router"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/storage"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	backend, cleanup, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}
	defer cleanup()

	documentStore, err := store.Open(context.Background(), backend, logger, store.Options{
		AuditLogCap:  cfg.AuditLogCap,
		SeedDemoData: cfg.SeedDemoData,
		OnPersist: func(ok bool) {
			outcome := "ok"
			if !ok {
				outcome = "degraded"
			}
			observability.DocumentWrites().WithLabelValues(outcome).Inc()
		},
	})
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	enrollScanner := biometric.NewScanner(logger)
	checkinScanner := biometric.NewScanner(logger)

	authService := service.NewAuthService(documentStore, validate, cfg.JWTSecret, cfg.SessionTimeout, logger)
	userService := service.NewUserService(documentStore, enrollScanner, validate, cfg.FaceRegFrames, cfg.FaceFrameInterval, logger)
	courseService := service.NewCourseService(documentStore, validate, logger)
	materialService := service.NewMaterialService(documentStore, validate, logger)
	attendanceService := service.NewAttendanceService(documentStore, checkinScanner, cfg.FaceScanDelay, cfg.FaceConfidence, logger)
	projectService := service.NewProjectService(documentStore, validate, logger)
	groupService := service.NewGroupService(documentStore, validate, logger)
	adminService := service.NewAdminService(documentStore, logger)
	exportService := service.NewExportService(documentStore, logger)
	playgroundService := service.NewPlaygroundService(backend, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		UserHandler:        handler.NewUserHandler(userService, logger),
		CourseHandler:      handler.NewCourseHandler(courseService, logger),
		MaterialHandler:    handler.NewMaterialHandler(materialService, logger),
		AttendanceHandler:  handler.NewAttendanceHandler(attendanceService, logger),
		ProjectHandler:     handler.NewProjectHandler(projectService, logger),
		GroupHandler:       handler.NewGroupHandler(groupService, logger),
		AdminHandler:       handler.NewAdminHandler(adminService, exportService, logger),
		PlaygroundHandler:  handler.NewPlaygroundHandler(playgroundService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		ActivityMiddleware: middleware.ActivityTracker(authService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, documentStore, logger)
}

// openStorage picks the storage backend: redis when a redis URL is set,
// otherwise a relational key-value table via the database URL. A blank
// database URL falls back to a local sqlite file.
func openStorage(cfg config.Config) (storage.Storage, func(), error) {
	if cfg.RedisURL != "" {
		client, err := storage.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, "edupro"), func() { client.Close() }, nil
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "edupro.db"
	}
	db, err := storage.ConnectGorm(dsn)
	if err != nil {
		return nil, nil, err
	}
	backend, err := storage.NewGorm(db)
	if err != nil {
		return nil, nil, err
	}
	return backend, func() {}, nil
}

func waitForShutdown(app *fiber.App, documentStore *store.Store, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := documentStore.Save(ctx); err != nil {
		logger.Error().Err(err).Msg("final document save failed")
	}
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
