package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
)

type SummaryResponse struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Role   user.Role `json:"role"`
	Year   int       `json:"year"`
	Month  int       `json:"month"`

	TotalDaysWorked float64 `json:"total_days_worked"`
	LeaveDays       int     `json:"leave_days"`

	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
	PerDaySalary     *decimal.Decimal `json:"per_day_salary,omitempty"`
	AttendanceSalary *decimal.Decimal `json:"attendance_salary,omitempty"`
	LeaveSalary      *decimal.Decimal `json:"leave_salary,omitempty"`

	StipendType   *user.StipendType `json:"stipend_type,omitempty"`
	StipendAmount *decimal.Decimal  `json:"stipend_amount,omitempty"`
	TotalHours    *decimal.Decimal  `json:"total_hours,omitempty"`

	ApprovedExpenses decimal.Decimal `json:"approved_expenses"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
}
