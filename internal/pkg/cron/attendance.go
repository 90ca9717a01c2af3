package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	attendancesvc "github.com/punchdesk/attendance-backend-go/internal/service/attendance"
)

// autoPunchOutSummary is the fixed work summary written on swept records.
const autoPunchOutSummary = "Punch out automatically done by system"

// AutoPunchOutSweep force-closes every punch cycle still open at the
// configured cutoff. Swept office/wfh records forfeit their day count; swept
// site visits keep the full day. The sweep is idempotent: it only ever sees
// records with no punch-out, so a rerun finds nothing to do.
type AutoPunchOutSweep struct {
	repo     attendance.Repository
	audit    audit.Log
	clk      clock.Clock
	cutoffAt string // "HH:MM"
	logger   *slog.Logger
}

func NewAutoPunchOutSweep(
	repo attendance.Repository,
	auditLog audit.Log,
	clk clock.Clock,
	cutoffAt string,
	logger *slog.Logger,
) *AutoPunchOutSweep {
	return &AutoPunchOutSweep{
		repo:     repo,
		audit:    auditLog,
		clk:      clk,
		cutoffAt: cutoffAt,
		logger:   logger,
	}
}

// Register wires the sweep into the scheduler at the configured cutoff time.
func (s *AutoPunchOutSweep) Register(scheduler *Scheduler) error {
	return scheduler.AddDailyJob("auto_punch_out", s.cutoffAt, s.Run)
}

// Run executes one sweep over today's open records. A failure on one record
// is logged and does not stop the rest of the sweep.
func (s *AutoPunchOutSweep) Run(ctx context.Context) error {
	now := s.clk.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cutoff, err := s.cutoffTime(today)
	if err != nil {
		return fmt.Errorf("invalid auto punch out cutoff %q: %w", s.cutoffAt, err)
	}

	open, err := s.repo.ListOpenByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open attendance records: %w", err)
	}

	swept := 0
	for _, rec := range open {
		if err := s.sweepRecord(ctx, rec, cutoff); err != nil {
			s.logger.ErrorContext(ctx, "failed to auto punch out record",
				slog.String("attendance_id", rec.ID),
				slog.String("user_id", rec.UserID),
				slog.Any("error", err),
			)
			continue
		}
		swept++
	}

	s.logger.InfoContext(ctx, "auto punch out sweep finished",
		slog.String("date", today.Format("2006-01-02")),
		slog.Int("open_records", len(open)),
		slog.Int("swept", swept),
	)
	return nil
}

func (s *AutoPunchOutSweep) sweepRecord(ctx context.Context, rec attendance.Attendance, cutoff time.Time) error {
	summary := autoPunchOutSummary
	dayCount := attendancesvc.AutoPunchOutDayCount(rec.Slot)

	rec.PunchOutTime = &cutoff
	rec.WorkSummary = &summary
	rec.IsAutoPunchOut = true
	rec.DayCount = &dayCount

	if err := s.repo.Update(ctx, rec); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, rec.UserID, audit.ActionAutoPunchOut,
		fmt.Sprintf("auto punched out with day count %.1f", dayCount), &rec.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", audit.ActionAutoPunchOut), slog.Any("error", err))
	}
	return nil
}

func (s *AutoPunchOutSweep) cutoffTime(day time.Time) (time.Time, error) {
	at, err := time.Parse("15:04", s.cutoffAt)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, day.Location()), nil
}
