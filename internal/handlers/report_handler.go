package handlers

import (
	"log/slog"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/chatline/report-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// ReportStore is the persistence surface the report handlers depend on.
// *services.ReportService satisfies it.
type ReportStore interface {
	Create(content []byte) (*models.Report, error)
	ListNewestFirst() ([]models.Report, error)
}

type ReportHandler struct {
	store        ReportStore
	exposeErrors bool
}

func NewReportHandler(store ReportStore, exposeErrors bool) *ReportHandler {
	return &ReportHandler{store: store, exposeErrors: exposeErrors}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Error: "Invalid request body",
		})
	}

	content, err := req.Validate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Error: err.Error(),
		})
	}

	report, err := h.store.Create([]byte(content))
	if err != nil {
		slog.Error("failed to create report",
			"request_id", requestID(c), "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Error: h.publicError("Failed to create report", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ReportCreatedResponse{
		Success: true,
		Data:    dto.NewReportResponse(report),
		Message: "Report submitted successfully",
	})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.store.ListNewestFirst()
	if err != nil {
		slog.Error("failed to fetch reports",
			"request_id", requestID(c), "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Error: h.publicError("Failed to fetch reports", err),
		})
	}

	return c.JSON(dto.ReportListResponse{
		Success: true,
		Data:    dto.NewReportResponses(reports),
		Count:   len(reports),
	})
}

// publicError masks storage detail unless error exposure is enabled.
func (h *ReportHandler) publicError(msg string, err error) string {
	if h.exposeErrors {
		return msg + ": " + err.Error()
	}
	return msg
}

// requestID returns the id set by the requestid middleware, or "" when the
// middleware is not mounted.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
