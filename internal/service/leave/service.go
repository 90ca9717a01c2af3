package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/domain/leave"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
)

type leaveServiceImpl struct {
	repo     leave.Repository
	userRepo user.UserRepository
	notifier notification.Sink
	audit    audit.Log
	clk      clock.Clock
	logger   *slog.Logger
}

func NewLeaveService(
	repo leave.Repository,
	userRepo user.UserRepository,
	notifier notification.Sink,
	auditLog audit.Log,
	clk clock.Clock,
	logger *slog.Logger,
) leave.Service {
	return &leaveServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		audit:    auditLog,
		clk:      clk,
		logger:   logger,
	}
}

func (s *leaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	applicant, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to load applicant: %w", err)
	}
	if applicant.IsIntern() {
		return leave.LeaveResponse{}, leave.ErrInternsCannotApply
	}

	leaveDate, err := time.ParseInLocation("2006-01-02", req.LeaveDate, s.clk.Location())
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to parse leave date: %w", err)
	}

	exists, err := s.repo.Exists(ctx, req.UserID, leaveDate, req.LeaveType)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check existing leave: %w", err)
	}
	if exists {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyApplied
	}

	now := s.clk.Now()
	created, err := s.repo.Create(ctx, leave.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		LeaveType: req.LeaveType,
		LeaveDate: leaveDate,
		Status:    leave.StatusPending,
		AppliedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.recordAudit(ctx, req.UserID, audit.ActionLeaveApplied,
		fmt.Sprintf("applied for %s leave on %s", req.LeaveType, req.LeaveDate), &created.ID)

	return toResponse(created), nil
}

func (s *leaveServiceImpl) ListMine(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	requests, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *leaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	requests, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *leaveServiceImpl) Approve(ctx context.Context, adminID, leaveID string) (leave.LeaveResponse, error) {
	return s.transition(ctx, adminID, leaveID, leave.StatusApproved)
}

func (s *leaveServiceImpl) Reject(ctx context.Context, adminID, leaveID string) (leave.LeaveResponse, error) {
	return s.transition(ctx, adminID, leaveID, leave.StatusRejected)
}

func (s *leaveServiceImpl) transition(ctx context.Context, adminID, leaveID string, status leave.Status) (leave.LeaveResponse, error) {
	req, err := s.repo.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if req.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clk.Now()
	if err := s.repo.UpdateStatus(ctx, leaveID, status, now); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	req.Status = status
	req.UpdatedAt = now

	action := audit.ActionLeaveApproved
	notifType := notification.TypeLeaveApproved
	verb := "approved"
	if status == leave.StatusRejected {
		action = audit.ActionLeaveRejected
		notifType = notification.TypeLeaveRejected
		verb = "rejected"
	}

	s.recordAudit(ctx, adminID, action,
		fmt.Sprintf("%s %s leave on %s for user %s",
			verb, req.LeaveType, req.LeaveDate.Format("2006-01-02"), req.UserID), &req.ID)

	s.notifier.Notify(ctx, req.UserID, notifType,
		fmt.Sprintf("Leave %s", verb),
		fmt.Sprintf("Your %s leave for %s has been %s.",
			req.LeaveType, req.LeaveDate.Format("2006-01-02"), verb),
		nil)

	return toResponse(req), nil
}

func (s *leaveServiceImpl) recordAudit(ctx context.Context, userID, action, details string, relatedID *string) {
	if err := s.audit.Record(ctx, userID, action, details, relatedID); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", action), slog.Any("error", err))
	}
}

func toResponse(req leave.LeaveRequest) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:        req.ID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		LeaveType: req.LeaveType,
		LeaveDate: req.LeaveDate.Format("2006-01-02"),
		Status:    req.Status,
		AppliedAt: req.AppliedAt.Format("2006-01-02 15:04:05"),
	}
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}
	return responses
}
