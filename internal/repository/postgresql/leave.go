package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/punchdesk/attendance-backend-go/internal/domain/leave"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, user_id, leave_type, leave_date, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		req.ID, req.UserID, req.LeaveType, req.LeaveDate, req.Status, req.AppliedAt, req.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_type, leave_date, status, applied_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.LeaveType, &req.LeaveDate,
		&req.Status, &req.AppliedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// Exists implements leave.Repository.
func (r *leaveRepository) Exists(ctx context.Context, userID string, date time.Time, leaveType leave.Type) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1 AND leave_date = $2 AND leave_type = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date, leaveType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave existence: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements leave.Repository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_requests SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// ListByUser implements leave.Repository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_type, leave_date, status, applied_at, updated_at
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY leave_date DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.LeaveType, &req.LeaveDate,
			&req.Status, &req.AppliedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave rows: %w", err)
	}

	return requests, nil
}

// ListPending implements leave.Repository. Joins the requester name for the
// admin review list.
func (r *leaveRepository) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.leave_type, l.leave_date, l.status, l.applied_at, l.updated_at, u.name
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.status = 'pending'
		ORDER BY l.applied_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.LeaveType, &req.LeaveDate,
			&req.Status, &req.AppliedAt, &req.UpdatedAt, &req.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave rows: %w", err)
	}

	return requests, nil
}

// CountApprovedInMonth implements leave.Repository.
func (r *leaveRepository) CountApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE user_id = $1
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM leave_date) = $2
		  AND EXTRACT(MONTH FROM leave_date) = $3
	`

	var count int
	if err := q.QueryRow(ctx, query, userID, year, int(month)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved leaves: %w", err)
	}

	return count, nil
}

// HasApprovedOn implements leave.Repository.
func (r *leaveRepository) HasApprovedOn(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1 AND leave_date = $2 AND status = 'approved'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}
