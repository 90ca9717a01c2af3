package cron_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/cron"
)

type sweepRepo struct {
	records map[string]attendance.Attendance
	updates int
}

func newSweepRepo() *sweepRepo {
	return &sweepRepo{records: make(map[string]attendance.Attendance)}
}

func (r *sweepRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.records[att.ID] = att
	return att, nil
}

func (r *sweepRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	rec, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *sweepRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *sweepRepo) Update(_ context.Context, att attendance.Attendance) error {
	r.records[att.ID] = att
	r.updates++
	return nil
}

func (r *sweepRepo) ListOpenByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(date) && rec.IsOpen() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *sweepRepo) ListRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *sweepRepo) ListByDate(_ context.Context, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *sweepRepo) MonthlySummary(_ context.Context, _ string, _ int, _ time.Month) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{}, nil
}

type sweepAudit struct {
	actions []string
}

func (a *sweepAudit) Record(_ context.Context, _ string, action string, _ string, _ *string) error {
	a.actions = append(a.actions, action)
	return nil
}

func openRecord(id, userID string, slot attendance.Slot, day, punchIn time.Time) attendance.Attendance {
	return attendance.Attendance{
		ID:          id,
		UserID:      userID,
		Date:        day,
		Slot:        slot,
		PunchInTime: punchIn,
	}
}

func TestAutoPunchOutSweep(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 2, 23, 59, 0, 0, loc)
	ctx := context.Background()

	repo := newSweepRepo()
	auditLog := &sweepAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Two open records (office, site visit), one already closed.
	repo.records["a1"] = openRecord("a1", "u1", attendance.SlotOffice, day, day.Add(9*time.Hour))
	repo.records["a2"] = openRecord("a2", "u2", attendance.SlotSiteVisit, day, day.Add(9*time.Hour))
	closed := openRecord("a3", "u3", attendance.SlotWFH, day, day.Add(9*time.Hour))
	outTime := day.Add(18 * time.Hour)
	closedCount := 1.0
	closed.PunchOutTime = &outTime
	closed.DayCount = &closedCount
	repo.records["a3"] = closed

	sweep := cron.NewAutoPunchOutSweep(repo, auditLog, clock.NewFixed(now), "23:59", logger)
	require.NoError(t, sweep.Run(ctx))

	office, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, office.IsOpen())
	assert.True(t, office.IsAutoPunchOut)
	require.NotNil(t, office.DayCount)
	assert.Equal(t, float64(0), *office.DayCount)
	require.NotNil(t, office.WorkSummary)
	assert.Equal(t, "Punch out automatically done by system", *office.WorkSummary)
	require.NotNil(t, office.PunchOutTime)
	assert.Equal(t, "23:59", office.PunchOutTime.Format("15:04"))

	siteVisit, err := repo.GetByID(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, siteVisit.IsAutoPunchOut)
	require.NotNil(t, siteVisit.DayCount)
	assert.Equal(t, float64(1), *siteVisit.DayCount)

	// Manually closed record untouched.
	untouched, err := repo.GetByID(ctx, "a3")
	require.NoError(t, err)
	assert.False(t, untouched.IsAutoPunchOut)
	assert.Equal(t, float64(1), *untouched.DayCount)

	assert.Len(t, auditLog.actions, 2)
	assert.Equal(t, 2, repo.updates)
}

func TestAutoPunchOutSweepIsIdempotent(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 2, 23, 59, 0, 0, loc)
	ctx := context.Background()

	repo := newSweepRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo.records["a1"] = openRecord("a1", "u1", attendance.SlotOffice, day, day.Add(9*time.Hour))

	sweep := cron.NewAutoPunchOutSweep(repo, &sweepAudit{}, clock.NewFixed(now), "23:59", logger)
	require.NoError(t, sweep.Run(ctx))
	require.NoError(t, sweep.Run(ctx))

	// Second run found nothing open, so only one update happened.
	assert.Equal(t, 1, repo.updates)
}

func TestAutoPunchOutSweepSkipsOtherDays(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	yesterday := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 2, 23, 59, 0, 0, loc)
	ctx := context.Background()

	repo := newSweepRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo.records["a1"] = openRecord("a1", "u1", attendance.SlotOffice, yesterday, yesterday.Add(9*time.Hour))

	sweep := cron.NewAutoPunchOutSweep(repo, &sweepAudit{}, clock.NewFixed(now), "23:59", logger)
	require.NoError(t, sweep.Run(ctx))

	rec, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, rec.IsOpen())
}
