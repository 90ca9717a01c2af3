package attendance

import (
	"io"

	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// PhotoUpload carries an optional proof photo. Photo evidence is best-effort:
// a failed upload records a nil reference and the punch still succeeds.
type PhotoUpload struct {
	File     io.Reader
	Filename string
}

func (p *PhotoUpload) Present() bool {
	return p != nil && p.File != nil
}

type PunchInRequest struct {
	UserID    string  `json:"-"`
	Slot      Slot    `json:"slot"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Photo     *PhotoUpload
}

func (r *PunchInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidSlot(r.Slot) {
		errs = append(errs, validator.ValidationError{
			Field:   "slot",
			Message: "slot must be one of office, wfh, site_visit",
		})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteVisitRequest struct {
	UserID    string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Photo     *PhotoUpload
}

func (r *SiteVisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchOutRequest struct {
	UserID      string  `json:"-"`
	WorkSummary string  `json:"work_summary"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Photo       *PhotoUpload
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	UserName           *string  `json:"user_name,omitempty"`
	Date               string   `json:"date"`
	Slot               Slot     `json:"slot"`
	PunchInTime        string   `json:"punch_in_time"`
	PunchOutTime       *string  `json:"punch_out_time"`
	SiteVisitTime      *string  `json:"site_visit_time,omitempty"`
	PunchInPhotoRef    *string  `json:"punch_in_photo,omitempty"`
	PunchOutPhotoRef   *string  `json:"punch_out_photo,omitempty"`
	SiteVisitPhotoRef  *string  `json:"site_visit_photo,omitempty"`
	WorkSummary        *string  `json:"work_summary,omitempty"`
	HoursWorked        *float64 `json:"hours_worked,omitempty"`
	DayCount           *float64 `json:"day_count"`
	IsAutoPunchOut     bool     `json:"is_auto_punch_out"`
}

type PunchInResponse struct {
	AttendanceID string `json:"attendance_id"`
	Slot         Slot   `json:"slot"`
	PunchInTime  string `json:"punch_in_time"`
}

type PunchOutResponse struct {
	AttendanceID string  `json:"attendance_id"`
	PunchOutTime string  `json:"punch_out_time"`
	DayCount     float64 `json:"day_count"`
}

type MonthlySummaryResponse struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	TotalRecords    int     `json:"total_records"`
	FullDays        int     `json:"full_days"`
	HalfDays        int     `json:"half_days"`
	TotalDaysWorked float64 `json:"total_days_worked"`
}
