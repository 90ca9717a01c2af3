package leave

import "time"

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
)

func ValidType(t Type) bool {
	return t == TypeSick || t == TypeCasual
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest is one day of leave for one user. Immutable once created
// except for the status transition performed by an administrator.
type LeaveRequest struct {
	ID        string
	UserID    string
	LeaveType Type
	LeaveDate time.Time
	Status    Status
	AppliedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	UserName *string
}
