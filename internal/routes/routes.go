package routes

import (
	"github.com/chatline/report-backend/internal/config"
	"github.com/chatline/report-backend/internal/handlers"
	"github.com/chatline/report-backend/internal/middleware"
	"github.com/chatline/report-backend/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	throttle *ratelimit.Throttle,
	generalLimiter *ratelimit.Limiter,
	reportLimiter *ratelimit.Limiter,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
) {
	hint := cfg.RetryAfterHint()

	// Layered admission: progressive slow-down first, hard general window second
	app.Use(middleware.SlowDown(throttle, nil))
	app.Use(middleware.RateLimit(generalLimiter, nil, "", hint))

	app.Get("/health", healthHandler.Check)

	app.Get("/reports", reportHandler.List)

	// Stricter window on the write path only
	app.Post("/reports",
		middleware.RateLimit(reportLimiter, nil, "Too many reports submitted, please try again later.", hint),
		reportHandler.Create,
	)

	// JSON catch-all for anything unmatched
	app.Use(middleware.NotFound)
}
