package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessCheck(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", body["status"])
}

func TestReadinessCheck_Healthy(t *testing.T) {
	_, app := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
	assert.Equal(t, "healthy", body.Checks.Redis)
}

func TestReadinessCheck_NoRedisIsDegraded(t *testing.T) {
	s, app := setupTestServer(t)
	s.redis = nil

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Redis string `json:"redis"`
		} `json:"checks"`
	}
	decodeJSON(t, resp, &body)
	// A missing Redis is degraded but not unhealthy; the API still serves.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
