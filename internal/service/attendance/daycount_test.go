package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	attendancesvc "github.com/punchdesk/attendance-backend-go/internal/service/attendance"
)

func testDayCountConfig() attendancesvc.DayCountConfig {
	return attendancesvc.DayCountConfig{
		LateWindowStart: "10:00",
		LateWindowEnd:   "10:15",
		RecoveryTime:    "19:00",
		HalfDayMinHours: 4,
		FullDayMinHours: 8,
	}
}

func closedRecord(t *testing.T, slot domain.Slot, in, out string, autoPunchOut bool) domain.Attendance {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	inTime, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-02 "+in, loc)
	require.NoError(t, err)
	outTime, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-02 "+out, loc)
	require.NoError(t, err)

	return domain.Attendance{
		ID:             "att-1",
		UserID:         "user-1",
		Date:           time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		Slot:           slot,
		PunchInTime:    inTime,
		PunchOutTime:   &outTime,
		IsAutoPunchOut: autoPunchOut,
	}
}

func TestComputeDayCount(t *testing.T) {
	tests := []struct {
		name         string
		slot         domain.Slot
		punchIn      string
		punchOut     string
		autoPunchOut bool
		want         float64
	}{
		{
			name:     "late arrival recovered by late departure",
			slot:     domain.SlotOffice,
			punchIn:  "10:05",
			punchOut: "19:05",
			want:     1,
		},
		{
			name:     "late window start is inclusive",
			slot:     domain.SlotOffice,
			punchIn:  "10:00",
			punchOut: "19:00",
			want:     1,
		},
		{
			name:     "late window end is inclusive",
			slot:     domain.SlotOffice,
			punchIn:  "10:15",
			punchOut: "19:00",
			want:     1,
		},
		{
			name:     "late arrival without recovery falls back to hours",
			slot:     domain.SlotOffice,
			punchIn:  "10:10",
			punchOut: "17:00",
			want:     0.5,
		},
		{
			name:     "arrival after window does not recover",
			slot:     domain.SlotOffice,
			punchIn:  "10:16",
			punchOut: "19:30",
			want:     1, // 9h14m clears the full-day threshold on its own
		},
		{
			name:     "half day between four and eight hours",
			slot:     domain.SlotWFH,
			punchIn:  "09:00",
			punchOut: "16:30",
			want:     0.5,
		},
		{
			name:     "under four hours earns nothing",
			slot:     domain.SlotOffice,
			punchIn:  "09:00",
			punchOut: "12:00",
			want:     0,
		},
		{
			name:     "exactly four hours is a half day",
			slot:     domain.SlotOffice,
			punchIn:  "09:00",
			punchOut: "13:00",
			want:     0.5,
		},
		{
			name:     "exactly eight hours is a full day",
			slot:     domain.SlotWFH,
			punchIn:  "09:00",
			punchOut: "17:00",
			want:     1,
		},
		{
			name:     "site visit is a full day regardless of hours",
			slot:     domain.SlotSiteVisit,
			punchIn:  "09:00",
			punchOut: "12:00",
			want:     1,
		},
		{
			name:         "auto punch out forfeits the day",
			slot:         domain.SlotOffice,
			punchIn:      "10:05",
			punchOut:     "23:59",
			autoPunchOut: true,
			want:         0,
		},
		{
			name:         "auto punch out on wfh forfeits the day",
			slot:         domain.SlotWFH,
			punchIn:      "09:00",
			punchOut:     "23:59",
			autoPunchOut: true,
			want:         0,
		},
		{
			name:         "auto punched out site visit keeps the full day",
			slot:         domain.SlotSiteVisit,
			punchIn:      "09:00",
			punchOut:     "23:59",
			autoPunchOut: true,
			want:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := closedRecord(t, tt.slot, tt.punchIn, tt.punchOut, tt.autoPunchOut)
			got := attendancesvc.ComputeDayCount(rec, testDayCountConfig())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayCountRulesOrder(t *testing.T) {
	names := make([]string, 0)
	for _, rule := range attendancesvc.DayCountRules() {
		names = append(names, rule.Name)
	}

	assert.Equal(t, []string{
		"site_visit_override",
		"auto_punch_out_penalty",
		"late_arrival_recovery",
		"hour_fallback",
	}, names)
}

func TestAutoPunchOutDayCount(t *testing.T) {
	assert.Equal(t, float64(1), attendancesvc.AutoPunchOutDayCount(domain.SlotSiteVisit))
	assert.Equal(t, float64(0), attendancesvc.AutoPunchOutDayCount(domain.SlotOffice))
	assert.Equal(t, float64(0), attendancesvc.AutoPunchOutDayCount(domain.SlotWFH))
}
