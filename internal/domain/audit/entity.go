package audit

import "time"

type Entry struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	RelatedID *string
	CreatedAt time.Time
}

// Core actions recorded in the audit trail.
const (
	ActionLogin            = "LOGIN"
	ActionLogout           = "LOGOUT"
	ActionPunchIn          = "PUNCH_IN"
	ActionPunchOut         = "PUNCH_OUT"
	ActionSiteVisitConvert = "SITE_VISIT_CONVERT"
	ActionAutoPunchOut     = "AUTO_PUNCH_OUT"
	ActionLeaveApplied     = "LEAVE_APPLIED"
	ActionLeaveApproved    = "LEAVE_APPROVED"
	ActionLeaveRejected    = "LEAVE_REJECTED"
	ActionExpenseAdded     = "EXPENSE_ADDED"
	ActionExpenseApproved  = "EXPENSE_APPROVED"
	ActionExpenseRejected  = "EXPENSE_REJECTED"
)
