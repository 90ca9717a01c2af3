package payroll

import "errors"

var (
	// ErrAdminHasNoPayroll: admins are excluded from payroll calculation.
	ErrAdminHasNoPayroll = errors.New("admins are not part of payroll calculation")

	ErrInvalidPeriod = errors.New("invalid payroll period")
)
