package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/expense"
	"github.com/punchdesk/attendance-backend-go/internal/domain/leave"
	"github.com/punchdesk/attendance-backend-go/internal/domain/payroll"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
)

// Payroll constants: employee per-day salary always divides the monthly
// salary by 30 regardless of calendar length, and hourly interns are
// credited 8 hours per counted day.
var (
	payrollDivisorDays = decimal.NewFromInt(30)
	internHoursPerDay  = decimal.NewFromInt(8)
)

type payrollServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	expenseRepo    expense.Repository
}

func NewPayrollService(
	userRepo user.UserRepository,
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
	expenseRepo expense.Repository,
) payroll.Service {
	return &payrollServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		expenseRepo:    expenseRepo,
	}
}

func (s *payrollServiceImpl) MonthlySummary(ctx context.Context, userID string, year, month int) (payroll.SummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.SummaryResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	return s.summarize(ctx, u, year, month)
}

func (s *payrollServiceImpl) TeamSummary(ctx context.Context, year, month int) ([]payroll.SummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListNonAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]payroll.SummaryResponse, 0, len(users))
	for _, u := range users {
		summary, err := s.summarize(ctx, u, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize payroll for user %s: %w", u.ID, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *payrollServiceImpl) summarize(ctx context.Context, u user.User, year, month int) (payroll.SummaryResponse, error) {
	if u.IsAdmin() {
		return payroll.SummaryResponse{}, payroll.ErrAdminHasNoPayroll
	}

	att, err := s.attendanceRepo.MonthlySummary(ctx, u.ID, year, time.Month(month))
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	expenses, err := s.expenseRepo.SumApprovedInMonth(ctx, u.ID, year, time.Month(month))
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to sum approved expenses: %w", err)
	}

	summary := payroll.SummaryResponse{
		UserID:           u.ID,
		Name:             u.Name,
		Role:             u.Role,
		Year:             year,
		Month:            month,
		TotalDaysWorked:  att.TotalDaysWorked,
		ApprovedExpenses: expenses,
	}

	if u.IsIntern() {
		return s.priceIntern(u, summary)
	}
	return s.priceEmployee(ctx, u, summary)
}

// priceEmployee: per-day = monthly/30; attendance and approved leave days
// both pay the per-day rate; gross adds approved expenses on top.
func (s *payrollServiceImpl) priceEmployee(ctx context.Context, u user.User, summary payroll.SummaryResponse) (payroll.SummaryResponse, error) {
	if u.MonthlySalary == nil {
		return payroll.SummaryResponse{}, user.ErrMissingSalaryConfig
	}

	leaveDays, err := s.leaveRepo.CountApprovedInMonth(ctx, u.ID, summary.Year, time.Month(summary.Month))
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to count approved leaves: %w", err)
	}

	base := *u.MonthlySalary
	perDay := base.Div(payrollDivisorDays).Round(2)
	attendanceSalary := perDay.Mul(decimal.NewFromFloat(summary.TotalDaysWorked)).Round(2)
	leaveSalary := perDay.Mul(decimal.NewFromInt(int64(leaveDays))).Round(2)
	gross := attendanceSalary.Add(leaveSalary).Add(summary.ApprovedExpenses).Round(2)

	summary.LeaveDays = leaveDays
	summary.BaseSalary = &base
	summary.PerDaySalary = &perDay
	summary.AttendanceSalary = &attendanceSalary
	summary.LeaveSalary = &leaveSalary
	summary.GrossSalary = gross
	return summary, nil
}

// priceIntern: hourly interns earn rate * 8h * counted days; fixed-stipend
// interns earn the stipend flat. Interns have no leave component.
func (s *payrollServiceImpl) priceIntern(u user.User, summary payroll.SummaryResponse) (payroll.SummaryResponse, error) {
	if u.StipendAmount == nil || u.StipendType == nil {
		return payroll.SummaryResponse{}, user.ErrMissingSalaryConfig
	}

	stipend := *u.StipendAmount
	stipendType := *u.StipendType
	summary.StipendType = &stipendType
	summary.StipendAmount = &stipend

	switch stipendType {
	case user.StipendHourly:
		hours := internHoursPerDay.Mul(decimal.NewFromFloat(summary.TotalDaysWorked))
		summary.TotalHours = &hours
		summary.GrossSalary = stipend.Mul(hours).Add(summary.ApprovedExpenses).Round(2)
	case user.StipendFixed:
		summary.GrossSalary = stipend.Add(summary.ApprovedExpenses).Round(2)
	default:
		return payroll.SummaryResponse{}, user.ErrMissingSalaryConfig
	}
	return summary, nil
}

func validatePeriod(year, month int) error {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payroll.ErrInvalidPeriod
	}
	return nil
}
