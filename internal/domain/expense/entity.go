package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ExpenseClaim is a reimbursement request. Only the status (and updated_at)
// changes after creation.
type ExpenseClaim struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Description string
	ExpenseDate time.Time
	ReceiptRef  *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	UserName *string
}
