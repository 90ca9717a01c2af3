package leave_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchdesk/attendance-backend-go/internal/domain/leave"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	leavesvc "github.com/punchdesk/attendance-backend-go/internal/service/leave"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	return req, nil
}

func (r *fakeLeaveRepo) Exists(_ context.Context, userID string, date time.Time, leaveType leave.Type) (bool, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.LeaveDate.Equal(date) && req.LeaveType == leaveType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.Status, updatedAt time.Time) error {
	req, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	r.requests[id] = req
	return nil
}

func (r *fakeLeaveRepo) ListByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListPending(_ context.Context) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range r.requests {
		if req.Status == leave.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) CountApprovedInMonth(_ context.Context, userID string, year int, month time.Month) (int, error) {
	count := 0
	for _, req := range r.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved &&
			req.LeaveDate.Year() == year && req.LeaveDate.Month() == month {
			count++
		}
	}
	return count, nil
}

func (r *fakeLeaveRepo) HasApprovedOn(_ context.Context, userID string, date time.Time) (bool, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved && req.LeaveDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByLoginID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) ListNonAdmin(_ context.Context) ([]user.User, error) {
	return nil, nil
}

type fakeSink struct {
	delivered []notification.Type
}

func (s *fakeSink) Notify(_ context.Context, _ string, typ notification.Type, _, _ string, _ *string) {
	s.delivered = append(s.delivered, typ)
}

type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) Record(_ context.Context, _ string, action string, _ string, _ *string) error {
	a.actions = append(a.actions, action)
	return nil
}

func newLeaveFixture(t *testing.T) (leave.Service, *fakeLeaveRepo, *fakeSink, *fakeAudit) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, loc)

	repo := newFakeLeaveRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1":    {ID: "emp-1", Name: "Asha", Role: user.RoleEmployee},
		"int-1":    {ID: "int-1", Name: "Ravi", Role: user.RoleIntern},
		"admin-1":  {ID: "admin-1", Name: "Boss", Role: user.RoleAdmin},
	}}
	sink := &fakeSink{}
	auditLog := &fakeAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := leavesvc.NewLeaveService(repo, users, sink, auditLog, clock.NewFixed(now), logger)
	return svc, repo, sink, auditLog
}

func TestApplyLeave(t *testing.T) {
	svc, _, _, auditLog := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), leave.ApplyRequest{
		UserID:    "emp-1",
		LeaveType: leave.TypeSick,
		LeaveDate: "2026-03-05",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "2026-03-05", resp.LeaveDate)
	assert.Contains(t, auditLog.actions, "LEAVE_APPLIED")
}

func TestInternsCannotApplyLeave(t *testing.T) {
	svc, _, _, _ := newLeaveFixture(t)

	_, err := svc.Apply(context.Background(), leave.ApplyRequest{
		UserID:    "int-1",
		LeaveType: leave.TypeCasual,
		LeaveDate: "2026-03-05",
	})
	assert.ErrorIs(t, err, leave.ErrInternsCannotApply)
}

func TestDuplicateLeaveApplication(t *testing.T) {
	svc, _, _, _ := newLeaveFixture(t)
	ctx := context.Background()

	req := leave.ApplyRequest{UserID: "emp-1", LeaveType: leave.TypeSick, LeaveDate: "2026-03-05"}

	_, err := svc.Apply(ctx, req)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, req)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyApplied)

	// A different type on the same date is a separate request.
	_, err = svc.Apply(ctx, leave.ApplyRequest{
		UserID: "emp-1", LeaveType: leave.TypeCasual, LeaveDate: "2026-03-05",
	})
	assert.NoError(t, err)
}

func TestApproveLeaveNotifiesRequester(t *testing.T) {
	svc, _, sink, auditLog := newLeaveFixture(t)
	ctx := context.Background()

	applied, err := svc.Apply(ctx, leave.ApplyRequest{
		UserID: "emp-1", LeaveType: leave.TypeSick, LeaveDate: "2026-03-05",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, "admin-1", applied.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Contains(t, sink.delivered, notification.TypeLeaveApproved)
	assert.Contains(t, auditLog.actions, "LEAVE_APPROVED")

	// Already processed: a second transition fails.
	_, err = svc.Reject(ctx, "admin-1", applied.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestRejectLeave(t *testing.T) {
	svc, _, sink, _ := newLeaveFixture(t)
	ctx := context.Background()

	applied, err := svc.Apply(ctx, leave.ApplyRequest{
		UserID: "emp-1", LeaveType: leave.TypeCasual, LeaveDate: "2026-03-06",
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, "admin-1", applied.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	assert.Contains(t, sink.delivered, notification.TypeLeaveRejected)
}

func TestApproveUnknownLeave(t *testing.T) {
	svc, _, _, _ := newLeaveFixture(t)

	_, err := svc.Approve(context.Background(), "admin-1", "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}
