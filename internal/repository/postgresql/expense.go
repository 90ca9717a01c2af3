package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/punchdesk/attendance-backend-go/internal/domain/expense"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.Repository {
	return &expenseRepository{db: db}
}

// Create implements expense.Repository.
func (r *expenseRepository) Create(ctx context.Context, claim expense.ExpenseClaim) (expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_claims (
			id, user_id, amount, description, expense_date, receipt_ref, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		claim.ID, claim.UserID, claim.Amount, claim.Description,
		claim.ExpenseDate, claim.ReceiptRef, claim.Status,
		claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return expense.ExpenseClaim{}, fmt.Errorf("failed to create expense claim: %w", err)
	}

	return claim, nil
}

// GetByID implements expense.Repository.
func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, amount, description, expense_date, receipt_ref, status, created_at, updated_at
		FROM expense_claims
		WHERE id = $1
	`

	var claim expense.ExpenseClaim
	err := q.QueryRow(ctx, query, id).Scan(
		&claim.ID, &claim.UserID, &claim.Amount, &claim.Description,
		&claim.ExpenseDate, &claim.ReceiptRef, &claim.Status,
		&claim.CreatedAt, &claim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ExpenseClaim{}, expense.ErrExpenseNotFound
		}
		return expense.ExpenseClaim{}, fmt.Errorf("failed to get expense claim: %w", err)
	}

	return claim, nil
}

// UpdateStatus implements expense.Repository.
func (r *expenseRepository) UpdateStatus(ctx context.Context, id string, status expense.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE expense_claims SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

// ListByUser implements expense.Repository.
func (r *expenseRepository) ListByUser(ctx context.Context, userID string) ([]expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, amount, description, expense_date, receipt_ref, status, created_at, updated_at
		FROM expense_claims
		WHERE user_id = $1
		ORDER BY expense_date DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense claims: %w", err)
	}
	defer rows.Close()

	var claims []expense.ExpenseClaim
	for rows.Next() {
		var claim expense.ExpenseClaim
		err := rows.Scan(
			&claim.ID, &claim.UserID, &claim.Amount, &claim.Description,
			&claim.ExpenseDate, &claim.ReceiptRef, &claim.Status,
			&claim.CreatedAt, &claim.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	return claims, nil
}

// ListPending implements expense.Repository. Joins the claimant name for the
// admin review list.
func (r *expenseRepository) ListPending(ctx context.Context) ([]expense.ExpenseClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.amount, e.description, e.expense_date, e.receipt_ref,
			   e.status, e.created_at, e.updated_at, u.name
		FROM expense_claims e
		JOIN users u ON u.id = e.user_id
		WHERE e.status = 'pending'
		ORDER BY e.created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending expense claims: %w", err)
	}
	defer rows.Close()

	var claims []expense.ExpenseClaim
	for rows.Next() {
		var claim expense.ExpenseClaim
		err := rows.Scan(
			&claim.ID, &claim.UserID, &claim.Amount, &claim.Description,
			&claim.ExpenseDate, &claim.ReceiptRef, &claim.Status,
			&claim.CreatedAt, &claim.UpdatedAt, &claim.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	return claims, nil
}

// SumApprovedInMonth implements expense.Repository.
func (r *expenseRepository) SumApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expense_claims
		WHERE user_id = $1
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM expense_date) = $2
		  AND EXTRACT(MONTH FROM expense_date) = $3
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, userID, year, int(month)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved expenses: %w", err)
	}

	return sum, nil
}
