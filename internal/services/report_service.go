package services

import (
	"fmt"

	"github.com/chatline/report-backend/internal/models"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create persists the already-validated content as raw bytes. The store
// assigns id and createdAt.
func (s *ReportService) Create(content []byte) (*models.Report, error) {
	report := models.Report{Content: content}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ListNewestFirst returns every report ordered by creation time descending.
func (s *ReportService) ListNewestFirst() ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
