package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. One row per
// (user_id, date) is a storage-layer invariant: a unique index backs the
// application-level AlreadyPunchedIn check so concurrent double-submits
// cannot create a second cycle.
type Repository interface {
	// Create inserts a new punch-in record. A uniqueness violation on
	// (user_id, date) is surfaced as ErrAlreadyPunchedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns the record for the user's business day, or
	// nil when the user has not punched in.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, att Attendance) error

	// ListOpenByDate returns records for the given day with no punch-out yet.
	// The sweep's idempotency rests on this filter.
	ListOpenByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListRange returns a user's records with punch-in date in [start, end].
	ListRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// ListByDate returns all users' records for one day (admin team view).
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// MonthlySummary aggregates finalized day counts for payroll.
	MonthlySummary(ctx context.Context, userID string, year int, month time.Month) (MonthlySummary, error)
}
