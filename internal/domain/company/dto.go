package company

import (
	"github.com/opsuite/opsuite-backend-go/internal/pkg/geo"
	"github.com/opsuite/opsuite-backend-go/internal/pkg/validator"
)

// UpdateLocationConfigRequest changes the company geofence settings used by
// the attendance tracker.
type UpdateLocationConfigRequest struct {
	GPS            string  `json:"gps"`
	Tolerance      string  `json:"tolerance"`
	AttendanceType *string `json:"attendance_type,omitempty"`
}

func (r *UpdateLocationConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.GPS) {
		errs = append(errs, validator.ValidationError{
			Field:   "gps",
			Message: "gps is required",
		})
	} else if _, _, err := geo.ParseGPS(r.GPS); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "gps",
			Message: err.Error(),
		})
	}

	if validator.IsEmpty(r.Tolerance) {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance",
			Message: "tolerance is required",
		})
	} else if _, err := geo.ParseTolerance(r.Tolerance); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance",
			Message: err.Error(),
		})
	}

	if r.AttendanceType != nil {
		validTypes := []string{"face_attendance", "location", "both"}
		if !validator.IsInSlice(*r.AttendanceType, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "attendance_type",
				Message: "attendance_type must be one of: face_attendance, location, both",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanyResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Address        *string `json:"address,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	GPS            *string `json:"gps,omitempty"`
	Tolerance      *string `json:"tolerance,omitempty"`
	AttendanceType *string `json:"attendance_type,omitempty"`
	Timezone       string  `json:"timezone"`
}
