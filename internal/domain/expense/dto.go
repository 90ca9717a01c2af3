package expense

import (
	"io"

	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AddRequest struct {
	UserID      string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`

	ReceiptFile     io.Reader `json:"-"`
	ReceiptFilename string    `json:"-"`
}

func (r *AddRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if _, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "expense_date",
			Message: "expense_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	UserName    *string         `json:"user_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
	ReceiptRef  *string         `json:"receipt,omitempty"`
	Status      Status          `json:"status"`
	CreatedAt   string          `json:"created_at"`
}
