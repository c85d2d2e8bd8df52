package tracker

import (
	"errors"
	"fmt"

	"github.com/opsuite/opsuite-backend-go/internal/pkg/geo"
)

// Tracker domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNotCheckedIn     = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// Configuration errors: fatal to the attempt, not retryable without an
	// admin fixing the company settings. Distinct from location errors.
	ErrLocationNotConfigured = errors.New("company location or tolerance is not configured")

	// Location submission errors
	ErrStaleLocation     = errors.New("device location fix is too old, request a fresh one")
	ErrOutsideTolerance  = errors.New("you are outside the allowed office radius")
	ErrUnderMinimumDuration = errors.New("minimum work duration not reached, confirmation required")

	// General errors
	ErrTrackerNotFound = errors.New("tracker record not found")
)

// OutsideToleranceError carries the computed distance so handlers can show
// the employee how far from the office they are.
type OutsideToleranceError struct {
	DistanceMeters float64
}

func (e *OutsideToleranceError) Error() string {
	return fmt.Sprintf("you are outside the allowed office radius (%s from office)",
		geo.FormatDistance(e.DistanceMeters))
}

func (e *OutsideToleranceError) Is(target error) bool {
	return target == ErrOutsideTolerance
}
