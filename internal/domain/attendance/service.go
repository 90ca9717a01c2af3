package attendance

import "context"

// Service is the attendance state machine. Per user per day the legal
// transitions are NoPunch -> PunchedIn -> PunchedOut, with an optional
// one-way site-visit conversion while punched in.
type Service interface {
	// PunchIn opens today's punch cycle. Office-slot punches are geofenced
	// against the configured office coordinates.
	PunchIn(ctx context.Context, req PunchInRequest) (PunchInResponse, error)

	// ConvertToSiteVisit flips an open office/wfh cycle to site_visit. The
	// conversion is one-way and guarantees a full-day count at punch-out.
	ConvertToSiteVisit(ctx context.Context, req SiteVisitRequest) (AttendanceResponse, error)

	// PunchOut closes today's cycle and finalizes the day count.
	PunchOut(ctx context.Context, req PunchOutRequest) (PunchOutResponse, error)

	// GetToday returns today's record for the user, nil if none.
	GetToday(ctx context.Context, userID string) (*AttendanceResponse, error)

	// ListMine returns the user's records between two "YYYY-MM-DD" dates.
	ListMine(ctx context.Context, userID string, startDate, endDate string) ([]AttendanceResponse, error)

	// MonthlySummary aggregates the user's finalized day counts.
	MonthlySummary(ctx context.Context, userID string, year int, month int) (MonthlySummaryResponse, error)

	// ListTeamByDate returns every user's record for a day (admin view).
	ListTeamByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}
