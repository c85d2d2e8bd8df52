package company

import "time"

type Company struct {
	ID       string
	Name     string
	Username string
	Address  *string
	LogoURL  *string

	// Geofence reference data for the attendance tracker. GPS is stored in
	// "lat,lng" form; Tolerance is either a decimal-degree value or the
	// literal "no_limit". Nil means attendance location checking has never
	// been configured for this company.
	GPS       *string
	Tolerance *string

	// AttendanceType selects the tracker surface for admin sessions:
	// face_attendance, location, or both.
	AttendanceType *string

	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
