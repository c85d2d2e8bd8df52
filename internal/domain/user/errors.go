package user

import "errors"

// User domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrRoleAccessRequired  = errors.New("your role does not allow this action")
	ErrCompanyIDRequired   = errors.New("user has no associated company")
)
