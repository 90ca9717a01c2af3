package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, claim ExpenseClaim) (ExpenseClaim, error)
	GetByID(ctx context.Context, id string) (ExpenseClaim, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error

	ListByUser(ctx context.Context, userID string) ([]ExpenseClaim, error)
	ListPending(ctx context.Context) ([]ExpenseClaim, error)

	// SumApprovedInMonth feeds the payroll aggregation.
	SumApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error)
}
