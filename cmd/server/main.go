package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/chatline/report-backend/internal/config"
	"github.com/chatline/report-backend/internal/database"
	"github.com/chatline/report-backend/internal/handlers"
	"github.com/chatline/report-backend/internal/logging"
	"github.com/chatline/report-backend/internal/middleware"
	"github.com/chatline/report-backend/internal/ratelimit"
	"github.com/chatline/report-backend/internal/routes"
	"github.com/chatline/report-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	startedAt := time.Now()

	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.Env)

	if cfg.DatabaseURL == "" && cfg.DBPassword == "" {
		slog.Error("DATABASE_URL or DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.Env),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Admission control: slow-down throttle under two hard limiters
	throttle := ratelimit.NewThrottle(ratelimit.ThrottleConfig{
		After:    cfg.SlowDownAfter,
		Step:     cfg.SlowDownStep,
		MaxDelay: cfg.SlowDownMaxDelay,
		Window:   cfg.RateLimitWindow,
	})
	generalLimiter := ratelimit.NewLimiter(ratelimit.LimiterConfig{
		Max:    cfg.RateLimitMax,
		Window: cfg.RateLimitWindow,
	})
	reportLimiter := ratelimit.NewLimiter(ratelimit.LimiterConfig{
		Max:    cfg.ReportRateLimitMax,
		Window: cfg.RateLimitWindow,
	})

	// Services
	reportService := services.NewReportService(database.DB)

	// Handlers
	healthHandler := handlers.NewHealthHandler(startedAt)
	reportHandler := handlers.NewReportHandler(reportService, !cfg.IsProduction())

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(!cfg.IsProduction()),
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
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes (admission control attached inside)
	routes.Setup(app, cfg, throttle, generalLimiter, reportLimiter, healthHandler, reportHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	throttle.Stop()
	generalLimiter.Stop()
	reportLimiter.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
