package leave

import (
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	UserID    string `json:"-"`
	LeaveType Type   `json:"leave_type"`
	LeaveDate string `json:"leave_date"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidType(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be sick or casual",
		})
	}
	if _, ok := validator.IsValidDate(r.LeaveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_date",
			Message: "leave_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	LeaveType Type    `json:"leave_type"`
	LeaveDate string  `json:"leave_date"`
	Status    Status  `json:"status"`
	AppliedAt string  `json:"applied_at"`
}
