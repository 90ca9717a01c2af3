package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
)

// Summary is the monthly payroll rollup for one user: finalized day counts
// plus approved leave plus approved expenses, priced by role.
type Summary struct {
	UserID string
	Name   string
	Role   user.Role
	Year   int
	Month  int

	TotalDaysWorked float64
	LeaveDays       int

	// Employee figures
	BaseSalary       *decimal.Decimal
	PerDaySalary     *decimal.Decimal
	AttendanceSalary *decimal.Decimal
	LeaveSalary      *decimal.Decimal

	// Intern figures
	StipendType   *user.StipendType
	StipendAmount *decimal.Decimal
	TotalHours    *decimal.Decimal

	ApprovedExpenses decimal.Decimal
	GrossSalary      decimal.Decimal
}
