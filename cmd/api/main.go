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

	"github.com/noah-isme/presensi-admin-api/internal/config"
	"github.com/noah-isme/presensi-admin-api/internal/database"
	"github.com/noah-isme/presensi-admin-api/internal/handler"
	"github.com/noah-isme/presensi-admin-api/internal/middleware"
	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
	"github.com/noah-isme/presensi-admin-api/internal/router"
	"github.com/noah-isme/presensi-admin-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}, &models.Attendance{}, &models.Permission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)

	aggregator := service.NewAttendanceAggregator(attendanceRepo, permissionRepo, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	studentService := service.NewStudentService(userRepo, enrollmentRepo, courseRepo, aggregator, validate, redisClient, cfg.StudentCacheTTL, logger)
	enrollmentService := service.NewEnrollmentService(userRepo, enrollmentRepo, courseRepo, validate, logger)
	attendanceLogService := service.NewAttendanceLogService(attendanceRepo, enrollmentRepo, userRepo, courseRepo, logger)
	permissionService := service.NewPermissionService(permissionRepo, enrollmentRepo, userRepo, courseRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(enrollmentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceLogService, logger),
		PermissionHandler: handler.NewPermissionHandler(permissionService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		LoginRateLimiter:  middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
