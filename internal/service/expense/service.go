package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/domain/expense"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	"github.com/punchdesk/attendance-backend-go/internal/service/file"
)

type expenseServiceImpl struct {
	repo     expense.Repository
	fileSvc  file.FileService
	notifier notification.Sink
	audit    audit.Log
	clk      clock.Clock
	logger   *slog.Logger
}

func NewExpenseService(
	repo expense.Repository,
	fileSvc file.FileService,
	notifier notification.Sink,
	auditLog audit.Log,
	clk clock.Clock,
	logger *slog.Logger,
) expense.Service {
	return &expenseServiceImpl{
		repo:     repo,
		fileSvc:  fileSvc,
		notifier: notifier,
		audit:    auditLog,
		clk:      clk,
		logger:   logger,
	}
}

func (s *expenseServiceImpl) Add(ctx context.Context, req expense.AddRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	expenseDate, err := time.ParseInLocation("2006-01-02", req.ExpenseDate, s.clk.Location())
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to parse expense date: %w", err)
	}

	// Receipt upload is best-effort, same as punch photos.
	var receiptRef *string
	if req.ReceiptFile != nil {
		ref, err := s.fileSvc.UploadReceipt(ctx, req.UserID, req.ReceiptFile, req.ReceiptFilename)
		if err != nil {
			s.logger.WarnContext(ctx, "receipt upload failed, continuing without receipt",
				slog.String("user_id", req.UserID), slog.Any("error", err))
		} else {
			receiptRef = &ref
		}
	}

	now := s.clk.Now()
	created, err := s.repo.Create(ctx, expense.ExpenseClaim{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Amount:      req.Amount,
		Description: req.Description,
		ExpenseDate: expenseDate,
		ReceiptRef:  receiptRef,
		Status:      expense.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense claim: %w", err)
	}

	s.recordAudit(ctx, req.UserID, audit.ActionExpenseAdded,
		fmt.Sprintf("claimed %s for %s", req.Amount.StringFixed(2), req.Description), &created.ID)

	return toResponse(created), nil
}

func (s *expenseServiceImpl) ListMine(ctx context.Context, userID string) ([]expense.ExpenseResponse, error) {
	claims, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense claims: %w", err)
	}
	return toResponses(claims), nil
}

func (s *expenseServiceImpl) ListPending(ctx context.Context) ([]expense.ExpenseResponse, error) {
	claims, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending expense claims: %w", err)
	}
	return toResponses(claims), nil
}

func (s *expenseServiceImpl) Approve(ctx context.Context, adminID, expenseID string) (expense.ExpenseResponse, error) {
	return s.transition(ctx, adminID, expenseID, expense.StatusApproved)
}

func (s *expenseServiceImpl) Reject(ctx context.Context, adminID, expenseID string) (expense.ExpenseResponse, error) {
	return s.transition(ctx, adminID, expenseID, expense.StatusRejected)
}

func (s *expenseServiceImpl) transition(ctx context.Context, adminID, expenseID string, status expense.Status) (expense.ExpenseResponse, error) {
	claim, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if claim.Status != expense.StatusPending {
		return expense.ExpenseResponse{}, expense.ErrExpenseAlreadyProcessed
	}

	now := s.clk.Now()
	if err := s.repo.UpdateStatus(ctx, expenseID, status, now); err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to update expense status: %w", err)
	}
	claim.Status = status
	claim.UpdatedAt = now

	action := audit.ActionExpenseApproved
	notifType := notification.TypeExpenseApproved
	verb := "approved"
	if status == expense.StatusRejected {
		action = audit.ActionExpenseRejected
		notifType = notification.TypeExpenseRejected
		verb = "rejected"
	}

	s.recordAudit(ctx, adminID, action,
		fmt.Sprintf("%s expense claim of %s for user %s",
			verb, claim.Amount.StringFixed(2), claim.UserID), &claim.ID)

	s.notifier.Notify(ctx, claim.UserID, notifType,
		fmt.Sprintf("Expense %s", verb),
		fmt.Sprintf("Your expense claim of %s (%s) has been %s.",
			claim.Amount.StringFixed(2), claim.Description, verb),
		nil)

	return toResponse(claim), nil
}

func (s *expenseServiceImpl) recordAudit(ctx context.Context, userID, action, details string, relatedID *string) {
	if err := s.audit.Record(ctx, userID, action, details, relatedID); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", action), slog.Any("error", err))
	}
}

func toResponse(claim expense.ExpenseClaim) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          claim.ID,
		UserID:      claim.UserID,
		UserName:    claim.UserName,
		Amount:      claim.Amount,
		Description: claim.Description,
		ExpenseDate: claim.ExpenseDate.Format("2006-01-02"),
		ReceiptRef:  claim.ReceiptRef,
		Status:      claim.Status,
		CreatedAt:   claim.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toResponses(claims []expense.ExpenseClaim) []expense.ExpenseResponse {
	responses := make([]expense.ExpenseResponse, 0, len(claims))
	for _, claim := range claims {
		responses = append(responses, toResponse(claim))
	}
	return responses
}
