package leave

import "context"

type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, userID string) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)

	// Approve/Reject are admin status transitions; each notifies the
	// requester and writes an audit entry.
	Approve(ctx context.Context, adminID, leaveID string) (LeaveResponse, error)
	Reject(ctx context.Context, adminID, leaveID string) (LeaveResponse, error)
}
