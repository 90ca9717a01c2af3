package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditLog(db *database.DB) audit.Log {
	return &auditRepository{db: db}
}

// Record implements audit.Log.
func (r *auditRepository) Record(ctx context.Context, userID, action, details string, relatedID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_log (id, user_id, action, details, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), userID, action, details, relatedID)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}
