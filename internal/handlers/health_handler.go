package handlers

import (
	"time"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}
