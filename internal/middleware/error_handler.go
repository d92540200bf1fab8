package middleware

import (
	"log/slog"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler terminates every error that escapes a handler: fiber error
// codes pass through (404, 405, 413 from the body limit), anything else
// becomes a 500. Server error detail is masked unless exposeDetail is set.
func ErrorHandler(exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= 500 {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			message = "Internal server error"
			if exposeDetail {
				message = err.Error()
			}
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Success: false,
			Error:   message,
		})
	}
}

// NotFound is the JSON catch-all for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Success: false,
		Error:   "Route not found",
	})
}
