package notification

import "time"

type Type string

const (
	TypeLeaveApproved   Type = "leave_approved"
	TypeLeaveRejected   Type = "leave_rejected"
	TypeExpenseApproved Type = "expense_approved"
	TypeExpenseRejected Type = "expense_rejected"
)

type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	Link      *string
	IsRead    bool
	CreatedAt time.Time
}
