package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingSalaryConfig flags a data-integrity fault: a payroll run hit a
	// user whose salary fields do not match their role.
	ErrMissingSalaryConfig = errors.New("user has no salary configuration for their role")
)
