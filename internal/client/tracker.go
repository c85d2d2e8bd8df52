package client

import (
	"context"
	"io"
	"net/http"

	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
)

// CheckInPayload is the JSON 'data' field of a tracker submission.
type CheckInPayload struct {
	GPS            string  `json:"gps"`
	CapturedAtMs   int64   `json:"captured_at"`
	AccuracyMeters float64 `json:"accuracy"`
	Force          bool    `json:"force,omitempty"`
}

// TrackerStatus fetches today's tracker state and the company geofence.
func (c *Client) TrackerStatus(ctx context.Context) (tracker.StatusResponse, error) {
	var status tracker.StatusResponse
	if err := c.Get(ctx, "/api/v1/employee-tracker/status", &status); err != nil {
		return tracker.StatusResponse{}, err
	}
	return status, nil
}

// SubmitCheckIn posts a check-in with an optional proof photo.
func (c *Client) SubmitCheckIn(ctx context.Context, payload CheckInPayload, photoName string, photo io.Reader) (tracker.TrackerResponse, error) {
	var result tracker.TrackerResponse
	err := c.PostFormData(ctx, http.MethodPost, "/api/v1/employee-tracker", payload, "photo", photoName, photo, &result)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}
	return result, nil
}

// SubmitCheckOut puts a check-out against an open tracker record.
func (c *Client) SubmitCheckOut(ctx context.Context, trackerID string, payload CheckInPayload, photoName string, photo io.Reader) (tracker.TrackerResponse, error) {
	var result tracker.TrackerResponse
	err := c.PostFormData(ctx, http.MethodPut, "/api/v1/employee-tracker/"+trackerID, payload, "photo", photoName, photo, &result)
	if err != nil {
		return tracker.TrackerResponse{}, err
	}
	return result, nil
}
