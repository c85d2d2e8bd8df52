package navigation

import "errors"

// Navigation domain errors
var (
	// ErrUnknownRole means the session carried a role code outside the
	// closed route table. Authenticated users should never hit this; it is
	// surfaced as a data defect rather than masked with a fallback route.
	ErrUnknownRole = errors.New("role code has no route table entry")
)
