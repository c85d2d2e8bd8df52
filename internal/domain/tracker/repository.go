package tracker

import (
	"context"
	"time"
)

// TrackerRepository defines data access for daily tracker records. Every
// method takes a companyID to keep tenants isolated at the query level.
type TrackerRepository interface {
	// Create inserts the record opened by a check-in
	Create(ctx context.Context, t Tracker) (Tracker, error)

	// GetByID retrieves a record by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Tracker, error)

	// GetByUserAndDate retrieves the record for one user on one working day.
	// Used to prevent double check-in; returns nil when absent.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time, companyID string) (*Tracker, error)

	// Update mutates an existing record (check-out, corrections)
	Update(ctx context.Context, t Tracker) error

	// List retrieves records with filters and pagination (admin surface)
	List(ctx context.Context, filter TrackerFilter, companyID string) ([]Tracker, int64, error)

	// GetMyTrackers retrieves records for one user
	GetMyTrackers(ctx context.Context, userID string, filter TrackerFilter, companyID string) ([]Tracker, int64, error)
}
