package company

import "errors"

// Company domain errors
var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCompanyUsernameExists = errors.New("company username already taken")
)
