package response

import (
	"errors"
	"net/http"

	"github.com/opsuite/opsuite-backend-go/internal/domain/auth"
	"github.com/opsuite/opsuite-backend-go/internal/domain/company"
	"github.com/opsuite/opsuite-backend-go/internal/domain/navigation"
	"github.com/opsuite/opsuite-backend-go/internal/domain/tracker"
	"github.com/opsuite/opsuite-backend-go/internal/domain/user"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/geo"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the computed distance, show it verbatim
	var outside *tracker.OutsideToleranceError
	if errors.As(err, &outside) {
		BadRequest(w, outside.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrRoleAccessRequired):
		Forbidden(w, "Your role does not allow this action")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Navigation domain errors
	case errors.Is(err, navigation.ErrUnknownRole):
		Forbidden(w, "Unknown role code")

	// Tracker domain errors
	case errors.Is(err, tracker.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, tracker.ErrNotCheckedIn):
		Conflict(w, "You have not checked in yet")
	case errors.Is(err, tracker.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, tracker.ErrUnderMinimumDuration):
		Conflict(w, "Minimum work duration not reached, resubmit with force to confirm")
	case errors.Is(err, tracker.ErrLocationNotConfigured):
		ConfigurationError(w, "Company location or tolerance is not configured")
	case errors.Is(err, tracker.ErrStaleLocation):
		BadRequest(w, "Device location fix is too old, request a fresh one", nil)
	case errors.Is(err, tracker.ErrOutsideTolerance):
		BadRequest(w, "You are outside the allowed office radius", nil)
	case errors.Is(err, tracker.ErrTrackerNotFound):
		NotFound(w, "Tracker record not found")

	// Coordinate parsing errors
	case errors.Is(err, geo.ErrInvalidGPSString),
		errors.Is(err, geo.ErrLatitudeRange),
		errors.Is(err, geo.ErrLongitudeRange):
		BadRequest(w, "Invalid GPS coordinates", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
