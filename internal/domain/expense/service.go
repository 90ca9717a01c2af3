package expense

import "context"

type Service interface {
	Add(ctx context.Context, req AddRequest) (ExpenseResponse, error)
	ListMine(ctx context.Context, userID string) ([]ExpenseResponse, error)
	ListPending(ctx context.Context) ([]ExpenseResponse, error)

	Approve(ctx context.Context, adminID, expenseID string) (ExpenseResponse, error)
	Reject(ctx context.Context, adminID, expenseID string) (ExpenseResponse, error)
}
