package dto

type ReportListResponse struct {
	Success bool             `json:"success"`
	Data    []ReportResponse `json:"data"`
	Count   int              `json:"count"`
}

type ReportCreatedResponse struct {
	Success bool           `json:"success"`
	Data    ReportResponse `json:"data"`
	Message string         `json:"message"`
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter string `json:"retryAfter,omitempty"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
