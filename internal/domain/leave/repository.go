package leave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Exists guards the one-request-per-(user, date, type) invariant.
	Exists(ctx context.Context, userID string, date time.Time, leaveType Type) (bool, error)

	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error

	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)

	// CountApprovedInMonth feeds the payroll aggregation.
	CountApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (int, error)

	// HasApprovedOn reports an approved leave for a specific day.
	HasApprovedOn(ctx context.Context, userID string, date time.Time) (bool, error)
}
