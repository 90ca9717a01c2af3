package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAlreadyPunchedIn   = errors.New("already punched in today")
	ErrNoPunchInFound     = errors.New("no punch in found for today")
	ErrAlreadyPunchedOut  = errors.New("already punched out today")
	ErrAlreadyOnSiteVisit = errors.New("already on site visit")

	ErrWorkSummaryRequired = errors.New("work summary is mandatory")
	ErrInvalidSlot         = errors.New("invalid slot")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutsideGeofenceError is returned when an office-slot punch-in happens
// beyond the allowed radius. It carries the measured distance so the caller
// can surface it to the user.
type OutsideGeofenceError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("outside office geofence: distance %.0fm exceeds allowed %.0fm",
		e.DistanceMeters, e.RadiusMeters)
}
