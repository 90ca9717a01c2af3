package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyApplied   = errors.New("leave already applied for this date")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrInternsCannotApply    = errors.New("interns cannot apply for leave")
)
