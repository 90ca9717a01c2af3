package attendance

import (
	"time"
)

// Slot is the work-location category for a punch.
type Slot string

const (
	SlotOffice    Slot = "office"
	SlotWFH       Slot = "wfh"
	SlotSiteVisit Slot = "site_visit"
)

func ValidSlot(s Slot) bool {
	switch s {
	case SlotOffice, SlotWFH, SlotSiteVisit:
		return true
	}
	return false
}

// Attendance is one punch cycle for one user on one calendar day. The record
// is created at punch-in and closed exactly once, either by punch-out or by
// the auto-punch-out sweep; once PunchOutTime is set the record is immutable.
type Attendance struct {
	ID     string
	UserID string

	// Date is the business day, derived from the punch-in timestamp.
	Date time.Time

	Slot Slot

	PunchInTime      time.Time
	PunchInLatitude  float64
	PunchInLongitude float64
	PunchInPhotoRef  *string

	// Site-visit conversion fields, set only when an office/wfh punch was
	// converted mid-day.
	SiteVisitTime      *time.Time
	SiteVisitLatitude  *float64
	SiteVisitLongitude *float64
	SiteVisitPhotoRef  *string

	PunchOutTime      *time.Time
	PunchOutLatitude  *float64
	PunchOutLongitude *float64
	PunchOutPhotoRef  *string

	WorkSummary *string

	// DayCount is the fractional attendance credit (0, 0.5 or 1), nil until
	// the record is closed.
	DayCount *float64

	IsAutoPunchOut bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	UserName *string
}

// IsOpen reports whether the punch cycle is still waiting for a punch-out.
func (a Attendance) IsOpen() bool {
	return a.PunchOutTime == nil
}

// HoursWorked returns the punch-in to punch-out span in hours. Zero for open
// records.
func (a Attendance) HoursWorked() float64 {
	if a.PunchOutTime == nil {
		return 0
	}
	return a.PunchOutTime.Sub(a.PunchInTime).Hours()
}

// MonthlySummary aggregates finalized day counts for one user and month.
type MonthlySummary struct {
	TotalRecords    int
	FullDays        int
	HalfDays        int
	TotalDaysWorked float64
}
