package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/chatline/report-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	reports   []models.Report
	nextID    uint
	createErr error
	listErr   error
}

func (f *fakeStore) Create(content []byte) (*models.Report, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	r := models.Report{ID: f.nextID, Content: content, CreatedAt: time.Now()}
	f.reports = append(f.reports, r)
	return &r, nil
}

func (f *fakeStore) ListNewestFirst() ([]models.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Report, len(f.reports))
	for i, r := range f.reports {
		out[len(f.reports)-1-i] = r
	}
	return out, nil
}

func newTestApp(store ReportStore, exposeErrors bool) *fiber.App {
	app := fiber.New()
	h := NewReportHandler(store, exposeErrors)
	app.Get("/reports", h.List)
	app.Post("/reports", h.Create)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestCreateReportTrimsContent(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, false)

	status, raw := doJSON(t, app, "POST", "/reports", `{"content":"  hello world  "}`)
	assert.Equal(t, fiber.StatusCreated, status)

	var body dto.ReportCreatedResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(1), body.Data.ID)
	assert.Equal(t, "hello world", body.Data.Content)
	assert.Equal(t, "Report submitted successfully", body.Message)

	require.Len(t, store.reports, 1)
	assert.Equal(t, []byte("hello world"), store.reports[0].Content)
}

func TestCreateReportInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"number", `{"content":42}`},
		{"boolean", `{"content":true}`},
		{"null", `{"content":null}`},
		{"object", `{"content":{"a":1}}`},
		{"empty string", `{"content":""}`},
		{"whitespace only", `{"content":"   \t\n "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			app := newTestApp(store, false)

			status, raw := doJSON(t, app, "POST", "/reports", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.False(t, body.Success)
			assert.Equal(t, "Content is required and must be a string", body.Error)

			assert.Empty(t, store.reports, "storage must not be invoked on invalid input")
		})
	}
}

func TestCreateReportMalformedJSON(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, false)

	status, raw := doJSON(t, app, "POST", "/reports", `{"content":`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid request body", body.Error)
	assert.Empty(t, store.reports)
}

func TestCreateReportStorageError(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	app := newTestApp(store, false)

	status, raw := doJSON(t, app, "POST", "/reports", `{"content":"hello"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to create report", body.Error)
}

func TestCreateReportStorageErrorExposed(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	app := newTestApp(store, true)

	status, raw := doJSON(t, app, "POST", "/reports", `{"content":"hello"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Failed to create report: connection refused", body.Error)
}

func TestCreateReportStorageErrorLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	store := &fakeStore{createErr: errors.New("connection refused")}
	h := NewReportHandler(store, false)
	app := fiber.New()
	app.Use(requestid.New())
	app.Post("/reports", h.Create)

	status, _ := doJSON(t, app, "POST", "/reports", `{"content":"hello"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)

	assert.Contains(t, buf.String(), `"request_id":"`)
	assert.NotContains(t, buf.String(), `"request_id":""`)
}

func TestListReportsNewestFirst(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, false)

	for _, content := range []string{"first", "second", "third"} {
		status, _ := doJSON(t, app, "POST", "/reports", `{"content":"`+content+`"}`)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, raw := doJSON(t, app, "GET", "/reports", "")
	assert.Equal(t, fiber.StatusOK, status)

	var body dto.ReportListResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Data, 3)
	assert.Equal(t, "third", body.Data[0].Content)
	assert.Equal(t, "second", body.Data[1].Content)
	assert.Equal(t, "first", body.Data[2].Content)
}

func TestListReportsEmpty(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, false)

	status, raw := doJSON(t, app, "GET", "/reports", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `"data":[]`)

	var body dto.ReportListResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, 0, body.Count)
}

func TestListReportsStorageError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	app := newTestApp(store, false)

	status, raw := doJSON(t, app, "GET", "/reports", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Failed to fetch reports", body.Error)
}

func TestReportContentRoundTrip(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, false)

	content := "héllo wörld 你好世界 🚀 emoji"
	payload, err := json.Marshal(map[string]string{"content": content})
	require.NoError(t, err)

	status, _ := doJSON(t, app, "POST", "/reports", string(payload))
	require.Equal(t, fiber.StatusCreated, status)

	status, raw := doJSON(t, app, "GET", "/reports", "")
	require.Equal(t, fiber.StatusOK, status)

	var body dto.ReportListResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, content, body.Data[0].Content)
}
