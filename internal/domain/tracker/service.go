package tracker

import (
	"context"
)

// TrackerService defines the attendance tracking business logic. The
// geofence check runs server-side on every submission: a client that skips
// its own validation cannot record an out-of-range attendance.
type TrackerService interface {
	// Status returns the caller's tracker state for today together with the
	// company geofence configuration the capture flow needs.
	Status(ctx context.Context) (StatusResponse, error)

	// CheckIn opens today's tracker record after validating the submitted
	// device fix against the company geofence.
	CheckIn(ctx context.Context, req CheckInRequest) (TrackerResponse, error)

	// CheckOut closes an open record. Below the minimum work duration it
	// refuses unless the request carries the force acknowledgement, in which
	// case the day is recorded as incomplete.
	CheckOut(ctx context.Context, req CheckOutRequest) (TrackerResponse, error)

	// ListTrackers retrieves records with filters (admin/manager)
	ListTrackers(ctx context.Context, filter TrackerFilter) (ListTrackerResponse, error)

	// GetMyTrackers retrieves the caller's own records
	GetMyTrackers(ctx context.Context, filter TrackerFilter) (ListTrackerResponse, error)
}
