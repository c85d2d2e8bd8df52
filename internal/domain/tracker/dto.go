package tracker

import (
	"mime/multipart"
	"strings"

	"github.com/opsuite/opsuite-backend-go/internal/pkg/validator"
)

// ========================================
// TRACKER DTOs
// ========================================

// CheckInRequest carries the multipart check-in payload: a "lat,lng" GPS
// string plus capture metadata from the device fix, and an optional selfie.
type CheckInRequest struct {
	GPS            string  `json:"gps"`
	CapturedAtMs   int64   `json:"captured_at"`
	AccuracyMeters float64 `json:"accuracy"`

	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.GPS) {
		errs = append(errs, validator.ValidationError{
			Field:   "gps",
			Message: "gps is required",
		})
	}

	if r.CapturedAtMs <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "captured_at",
			Message: "captured_at must be a positive epoch timestamp in milliseconds",
		})
	}

	if r.AccuracyMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if err := validatePhoto(r.FileHeader); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest mirrors CheckInRequest for the closing half of the day.
// Force acknowledges the under-minimum-duration warning: without it a
// check-out before the minimum work duration is refused so the client can
// ask for confirmation first.
type CheckOutRequest struct {
	ID             string  `json:"-"`
	GPS            string  `json:"gps"`
	CapturedAtMs   int64   `json:"captured_at"`
	AccuracyMeters float64 `json:"accuracy"`
	Force          bool    `json:"force"`

	PhotoURL   *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "tracker id is required",
		})
	}

	if validator.IsEmpty(r.GPS) {
		errs = append(errs, validator.ValidationError{
			Field:   "gps",
			Message: "gps is required",
		})
	}

	if r.CapturedAtMs <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "captured_at",
			Message: "captured_at must be a positive epoch timestamp in milliseconds",
		})
	}

	if r.AccuracyMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if err := validatePhoto(r.FileHeader); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validatePhoto checks an optional proof photo. A missing photo is fine;
// a present one must be an image of reasonable size.
func validatePhoto(header *multipart.FileHeader) *validator.ValidationError {
	if header == nil {
		return nil
	}

	filename := header.Filename
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return &validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		}
	}

	ext := strings.ToLower(filename[idx:])
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return &validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		}
	}

	if header.Size > 10<<20 { // 10MB
		return &validator.ValidationError{
			Field:   "photo",
			Message: "proof photo size must not exceed 10MB",
		}
	}

	return nil
}

// StatusResponse is the daily tracker state plus the company geofence
// reference data the capture flow needs before requesting a device fix.
type StatusResponse struct {
	TrackerID     *string `json:"tracker_id,omitempty"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	CompanyGPS    string  `json:"company_gps"`
	Tolerance     string  `json:"tolerance"`
	ToleranceUnit string  `json:"tolerance_unit"`
	Under30Min    bool    `json:"under_30min"`
	Status        string  `json:"status,omitempty"`
}

type TrackerResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          string   `json:"user_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckInPhotoURL   *string  `json:"check_in_photo_url,omitempty"`
	CheckOutPhotoURL  *string  `json:"check_out_photo_url,omitempty"`
	WorkingHours      *float64 `json:"working_hours,omitempty"`
	Status            string   `json:"status"`
}

type TrackerFilter struct {
	// Search & Filter
	UserID    *string `json:"user_id,omitempty"`
	UserName  *string `json:"user_name,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TrackerFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{StatusOpen, StatusComplete, StatusIncomplete}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: open, complete, incomplete",
			})
		}
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTrackerResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Trackers   []TrackerResponse `json:"trackers"`
}
