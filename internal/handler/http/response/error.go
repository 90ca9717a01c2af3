package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/auth"
	"github.com/punchdesk/attendance-backend-go/internal/domain/expense"
	"github.com/punchdesk/attendance-backend-go/internal/domain/leave"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/payroll"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance to the caller.
	var geoErr *attendance.OutsideGeofenceError
	if errors.As(err, &geoErr) {
		Forbidden(w, "You are outside the office geofence", map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", geoErr.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%.0f", geoErr.RadiusMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid login id or pin")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrMissingSalaryConfig):
		InternalServerError(w, "User salary configuration is incomplete")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNoPunchInFound):
		NotFound(w, "No punch in found for today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out today")
	case errors.Is(err, attendance.ErrAlreadyOnSiteVisit):
		Conflict(w, "Already on site visit")
	case errors.Is(err, attendance.ErrWorkSummaryRequired):
		BadRequest(w, "Work summary is mandatory", nil)
	case errors.Is(err, attendance.ErrInvalidSlot):
		BadRequest(w, "Invalid slot", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyApplied):
		Conflict(w, "Leave already applied for this date")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInternsCannotApply):
		Forbidden(w, "Interns cannot apply for leave", nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense claim not found")
	case errors.Is(err, expense.ErrExpenseAlreadyProcessed):
		Conflict(w, "Expense claim already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrAdminHasNoPayroll):
		BadRequest(w, "Admins are not part of payroll calculation", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
