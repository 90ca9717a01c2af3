package audit

import "context"

// Log is fire-and-forget from the core's perspective: callers log failures
// and move on, they never roll back the operation being audited.
type Log interface {
	Record(ctx context.Context, userID, action, details string, relatedID *string) error
}
