package payroll

import "context"

type Service interface {
	// MonthlySummary computes one user's payroll for (year, month).
	MonthlySummary(ctx context.Context, userID string, year, month int) (SummaryResponse, error)

	// TeamSummary computes payroll for every non-admin user (admin view).
	TeamSummary(ctx context.Context, year, month int) ([]SummaryResponse, error)
}
