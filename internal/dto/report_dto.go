package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/chatline/report-backend/internal/models"
)

var ErrContentRequired = errors.New("Content is required and must be a string")

// CreateReportRequest carries content as an untyped JSON value so missing
// and non-string payloads can be told apart from blank ones.
type CreateReportRequest struct {
	Content any `json:"content"`
}

// Validate returns the trimmed content, or ErrContentRequired when content
// is missing, not a string, or blank after trimming.
func (r *CreateReportRequest) Validate() (string, error) {
	text, ok := r.Content.(string)
	if !ok {
		return "", ErrContentRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrContentRequired
	}
	return text, nil
}

type ReportResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:        r.ID,
		Content:   string(r.Content),
		CreatedAt: r.CreatedAt,
	}
}

// NewReportResponses maps stored reports to their wire form. The result is
// never nil so an empty list serializes as [] rather than null.
func NewReportResponses(reports []models.Report) []ReportResponse {
	out := make([]ReportResponse, len(reports))
	for i := range reports {
		out[i] = NewReportResponse(&reports[i])
	}
	return out
}
