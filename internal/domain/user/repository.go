package user

import "context"

// UserRepository is read-only from the attendance core's perspective.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)

	// GetByLoginID looks a user up by email or phone (login screen accepts either).
	GetByLoginID(ctx context.Context, loginID string) (User, error)

	// ListNonAdmin returns employees and interns, used by team payroll views.
	ListNonAdmin(ctx context.Context) ([]User, error)
}
