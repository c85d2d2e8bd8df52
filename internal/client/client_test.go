package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
)

func TestTrackerStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/employee-tracker/status", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"company_gps":    "-6.2,106.8",
				"tolerance":      "0.001",
				"tolerance_unit": "decimal_degrees",
				"under_30min":    false,
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("token-123")

	status, err := c.TrackerStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "-6.2,106.8", status.CompanyGPS)
	assert.Equal(t, "0.001", status.Tolerance)
	assert.False(t, status.Under30Min)
}

func TestAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error": map[string]interface{}{
				"code":    "CONFLICT",
				"message": "You have already checked in today",
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.TrackerStatus(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "already checked in")
}

func TestSubmitCheckInMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var payload CheckInPayload
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &payload))
		assert.Equal(t, "-6.200000,106.800000", payload.GPS)
		assert.Equal(t, int64(1700000000000), payload.CapturedAtMs)

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "proof.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":     "t-1",
				"status": tracker.StatusOpen,
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)

	payload := CheckInPayload{
		GPS:            "-6.200000,106.800000",
		CapturedAtMs:   1700000000000,
		AccuracyMeters: 5,
	}

	result, err := c.SubmitCheckIn(context.Background(), payload, "proof.jpg", bytes.NewReader([]byte("jpeg")))
	require.NoError(t, err)
	assert.Equal(t, "t-1", result.ID)
	assert.Equal(t, tracker.StatusOpen, result.Status)
}
