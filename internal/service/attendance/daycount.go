package attendance

import (
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
)

// DayCountConfig carries the business-rule constants the engine consumes.
// All times of day are "HH:MM" strings in the business timezone.
type DayCountConfig struct {
	LateWindowStart string
	LateWindowEnd   string
	RecoveryTime    string
	HalfDayMinHours float64
	FullDayMinHours float64
}

// DayCountRule is one predicate in the engine. Apply returns the day count
// and true when the rule decides the record; rules are evaluated in order
// and the first match wins.
type DayCountRule struct {
	Name  string
	Apply func(rec attendance.Attendance, cfg DayCountConfig) (float64, bool)
}

// DayCountRules returns the ordered rule chain:
//
//  1. site-visit override: a site visit is always a full day
//  2. auto-punch-out penalty: a swept office/wfh record earns nothing
//  3. late-arrival recovery: a 10:00-10:15 arrival is forgiven by a >=19:00 departure
//  4. hour fallback: <4h -> 0, <8h -> 0.5, else 1
func DayCountRules() []DayCountRule {
	return []DayCountRule{
		{
			Name: "site_visit_override",
			Apply: func(rec attendance.Attendance, _ DayCountConfig) (float64, bool) {
				if rec.Slot == attendance.SlotSiteVisit {
					return 1, true
				}
				return 0, false
			},
		},
		{
			Name: "auto_punch_out_penalty",
			Apply: func(rec attendance.Attendance, _ DayCountConfig) (float64, bool) {
				if rec.IsAutoPunchOut && rec.Slot != attendance.SlotSiteVisit {
					return AutoPunchOutDayCount(rec.Slot), true
				}
				return 0, false
			},
		},
		{
			Name: "late_arrival_recovery",
			Apply: func(rec attendance.Attendance, cfg DayCountConfig) (float64, bool) {
				if rec.PunchOutTime == nil {
					return 0, false
				}
				in := minutesOfDay(rec.PunchInTime)
				lateStart, okStart := clockMinutes(cfg.LateWindowStart)
				lateEnd, okEnd := clockMinutes(cfg.LateWindowEnd)
				recovery, okRec := clockMinutes(cfg.RecoveryTime)
				if !okStart || !okEnd || !okRec {
					return 0, false
				}
				// Window bounds are inclusive.
				if in >= lateStart && in <= lateEnd && minutesOfDay(*rec.PunchOutTime) >= recovery {
					return 1, true
				}
				return 0, false
			},
		},
		{
			Name: "hour_fallback",
			Apply: func(rec attendance.Attendance, cfg DayCountConfig) (float64, bool) {
				hours := rec.HoursWorked()
				switch {
				case hours < cfg.HalfDayMinHours:
					return 0, true
				case hours < cfg.FullDayMinHours:
					return 0.5, true
				default:
					return 1, true
				}
			},
		},
	}
}

// ComputeDayCount maps a closed attendance record to its fractional credit.
// Pure function of the record and the constants; callable without any
// persistence in place.
func ComputeDayCount(rec attendance.Attendance, cfg DayCountConfig) float64 {
	for _, rule := range DayCountRules() {
		if count, ok := rule.Apply(rec, cfg); ok {
			return count
		}
	}
	// Unreachable: hour_fallback always decides.
	return 0
}

// AutoPunchOutDayCount is the penalty split applied to records force-closed
// by the sweep: site visits keep their full day, everything else earns zero.
// Both the sweep and the engine's penalty rule call this, so the two paths
// cannot diverge.
func AutoPunchOutDayCount(slot attendance.Slot) float64 {
	if slot == attendance.SlotSiteVisit {
		return 1
	}
	return 0
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return minutesOfDay(t), true
}
