package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chatline/report-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(time.Now().Add(-2 * time.Second))
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "OK", body.Status)
	assert.GreaterOrEqual(t, body.Uptime, 2.0)

	_, err = time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestHealthCheckUptimeNonDecreasing(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(time.Now())
	app.Get("/health", h.Check)

	read := func() float64 {
		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body dto.HealthResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		return body.Uptime
	}

	first := read()
	time.Sleep(10 * time.Millisecond)
	second := read()
	assert.GreaterOrEqual(t, second, first)
}
