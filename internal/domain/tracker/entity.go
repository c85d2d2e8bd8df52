package tracker

import (
	"time"
)

// Tracker status values. A day starts "open" on check-in; check-out settles
// it as "complete", or "incomplete" when the minimum work duration was not
// reached and the employee confirmed anyway.
const (
	StatusOpen       = "open"
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

type Tracker struct {
	ID                string
	UserID            string
	CompanyID         string
	Date              time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInPhotoURL   *string
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPhotoURL  *string
	WorkMinutes       *int
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	UserName *string
}
