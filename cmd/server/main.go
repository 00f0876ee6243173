package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"github.com/patinhas/adoption-api/internal/cache"
	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/database"
	"github.com/patinhas/adoption-api/internal/dto"
	"github.com/patinhas/adoption-api/internal/handlers"
	"github.com/patinhas/adoption-api/internal/jobs"
	"github.com/patinhas/adoption-api/internal/logging"
	"github.com/patinhas/adoption-api/internal/mailer"
	"github.com/patinhas/adoption-api/internal/metrics"
	"github.com/patinhas/adoption-api/internal/middleware"
	"github.com/patinhas/adoption-api/internal/routes"
	"github.com/patinhas/adoption-api/internal/services"
	"github.com/patinhas/adoption-api/internal/storage"
)

//go:generate swag init -g main.go -d ./,../../internal/handlers,../../internal/dto,../../internal/models -o ../../internal/docs --outputTypes go --overridesFile ../../.swaggo

// @title Patinhas Adoption API
// @version 1.0
// @description Pet adoption backend: users, pets, adoption requests, donations, addresses and questionnaires.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	logging.WithDatabase(pgLogHandler)

	// Cache, storage, mail
	appCache := newCache(ctx, cfg)
	store, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "type", cfg.StorageType, "error", err)
		os.Exit(1)
	}
	mail, err := mailer.New(ctx, cfg)
	if err != nil {
		slog.Error("mailer setup failed", "driver", cfg.MailDriver, "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(db, cfg, mail)
	userService := services.NewUserService(db, appCache)
	petService := services.NewPetService(db, appCache, store, cfg.CacheTTL)
	adoptionService := services.NewAdoptionService(db, appCache)
	donationService := services.NewDonationService(db, appCache)
	addressService := services.NewAddressService(db)
	questionService := services.NewQuestionService(db, appCache, cfg.CacheTTL)

	// Maintenance jobs
	scheduler := jobs.NewScheduler(ctx)
	for _, job := range jobs.Maintenance(db, authService, cfg.LogRetention) {
		if err := scheduler.Add(job); err != nil {
			slog.Error("failed to schedule job", "action", job.Name, "error", err)
			os.Exit(1)
		}
	}
	scheduler.Start()

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; uploads are capped at 5MB per image plus form overhead.
	app := fiber.New(fiber.Config{
		BodyLimit:    6 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${locals:requestid} | ${method} | ${path}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Health:    handlers.NewHealthHandler(dbPinger(db), appCache),
		Users:     handlers.NewUserHandler(userService),
		Pets:      handlers.NewPetHandler(petService),
		Adoptions: handlers.NewAdoptionHandler(adoptionService),
		Donations: handlers.NewDonationHandler(donationService),
		Addresses: handlers.NewAddressHandler(addressService),
		Questions: handlers.NewQuestionHandler(questionService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "storage", cfg.StorageType, "mail", cfg.MailDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stop()
	scheduler.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if closer, ok := appCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Error("cache close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// newCache connects to Redis when REDIS_URL is set. An unreachable Redis
// downgrades to the no-op cache instead of stopping the service.
func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, caching disabled")
		return cache.Noop{}
	}
	rc, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		slog.Warn("invalid REDIS_URL, caching disabled", "error", err)
		return cache.Noop{}
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		slog.Warn("redis unreachable, caching disabled", "error", err)
		_ = rc.Close()
		return cache.Noop{}
	}
	return rc
}

func dbPinger(db *gorm.DB) handlers.PingFunc {
	return func(ctx context.Context) error { return database.Ping(ctx, db) }
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Envelope{
		Status:  dto.StatusError,
		Message: message,
	})
}
