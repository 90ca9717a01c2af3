package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/config"
	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/utils"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
	"github.com/punchdesk/attendance-backend-go/internal/service/file"

	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02 15:04:05"

type attendanceServiceImpl struct {
	repo    attendance.Repository
	fileSvc file.FileService
	audit   audit.Log
	clk     clock.Clock
	cfg     config.AttendanceConfig
	logger  *slog.Logger
}

func NewAttendanceService(
	repo attendance.Repository,
	fileSvc file.FileService,
	auditLog audit.Log,
	clk clock.Clock,
	cfg config.AttendanceConfig,
	logger *slog.Logger,
) attendance.Service {
	return &attendanceServiceImpl{
		repo:    repo,
		fileSvc: fileSvc,
		audit:   auditLog,
		clk:     clk,
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *attendanceServiceImpl) dayCountConfig() DayCountConfig {
	return DayCountConfig{
		LateWindowStart: s.cfg.LateWindowStart,
		LateWindowEnd:   s.cfg.LateWindowEnd,
		RecoveryTime:    s.cfg.RecoveryTime,
		HalfDayMinHours: s.cfg.HalfDayMinHours,
		FullDayMinHours: s.cfg.FullDayMinHours,
	}
}

func (s *attendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.PunchInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchInResponse{}, err
	}

	now := s.clk.Now()
	today := businessDate(now)

	existing, err := s.repo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.PunchInResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.PunchInResponse{}, attendance.ErrAlreadyPunchedIn
	}

	// Geofence applies only to office punches; wfh and site_visit punch in
	// from anywhere.
	if req.Slot == attendance.SlotOffice {
		distance := utils.HaversineDistanceMeters(
			s.cfg.OfficeLatitude, s.cfg.OfficeLongitude,
			req.Latitude, req.Longitude,
		)
		if distance > s.cfg.OfficeRadiusMeters {
			return attendance.PunchInResponse{}, &attendance.OutsideGeofenceError{
				DistanceMeters: distance,
				RadiusMeters:   s.cfg.OfficeRadiusMeters,
			}
		}
	}

	photoRef := s.uploadPhoto(ctx, req.UserID, "in", req.Photo)

	rec := attendance.Attendance{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		Date:             today,
		Slot:             req.Slot,
		PunchInTime:      now,
		PunchInLatitude:  req.Latitude,
		PunchInLongitude: req.Longitude,
		PunchInPhotoRef:  photoRef,
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return attendance.PunchInResponse{}, err
	}

	s.recordAudit(ctx, req.UserID, audit.ActionPunchIn,
		fmt.Sprintf("punched in with slot %s", req.Slot), &created.ID)

	return attendance.PunchInResponse{
		AttendanceID: created.ID,
		Slot:         created.Slot,
		PunchInTime:  created.PunchInTime.Format(timestampLayout),
	}, nil
}

func (s *attendanceServiceImpl) ConvertToSiteVisit(ctx context.Context, req attendance.SiteVisitRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clk.Now()
	today := businessDate(now)

	rec, err := s.repo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil || !rec.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrNoPunchInFound
	}
	if rec.Slot == attendance.SlotSiteVisit {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyOnSiteVisit
	}

	photoRef := s.uploadPhoto(ctx, req.UserID, "site", req.Photo)

	rec.Slot = attendance.SlotSiteVisit
	rec.SiteVisitTime = &now
	rec.SiteVisitLatitude = &req.Latitude
	rec.SiteVisitLongitude = &req.Longitude
	rec.SiteVisitPhotoRef = photoRef

	if err := s.repo.Update(ctx, *rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to convert to site visit: %w", err)
	}

	s.recordAudit(ctx, req.UserID, audit.ActionSiteVisitConvert,
		"converted today's attendance to site visit", &rec.ID)

	return toResponse(*rec), nil
}

func (s *attendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.PunchOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchOutResponse{}, err
	}

	now := s.clk.Now()
	today := businessDate(now)

	rec, err := s.repo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.PunchOutResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.PunchOutResponse{}, attendance.ErrNoPunchInFound
	}
	if !rec.IsOpen() {
		return attendance.PunchOutResponse{}, attendance.ErrAlreadyPunchedOut
	}

	// A site visit already implies a full day, so the summary is optional
	// there; every other slot must say what was done.
	if rec.Slot != attendance.SlotSiteVisit && validator.IsEmpty(req.WorkSummary) {
		return attendance.PunchOutResponse{}, attendance.ErrWorkSummaryRequired
	}

	photoRef := s.uploadPhoto(ctx, req.UserID, "out", req.Photo)

	rec.PunchOutTime = &now
	rec.PunchOutLatitude = &req.Latitude
	rec.PunchOutLongitude = &req.Longitude
	rec.PunchOutPhotoRef = photoRef
	if !validator.IsEmpty(req.WorkSummary) {
		rec.WorkSummary = &req.WorkSummary
	}

	dayCount := ComputeDayCount(*rec, s.dayCountConfig())
	rec.DayCount = &dayCount

	if err := s.repo.Update(ctx, *rec); err != nil {
		return attendance.PunchOutResponse{}, fmt.Errorf("failed to punch out: %w", err)
	}

	s.recordAudit(ctx, req.UserID, audit.ActionPunchOut,
		fmt.Sprintf("punched out with day count %.1f", dayCount), &rec.ID)

	return attendance.PunchOutResponse{
		AttendanceID: rec.ID,
		PunchOutTime: now.Format(timestampLayout),
		DayCount:     dayCount,
	}, nil
}

func (s *attendanceServiceImpl) GetToday(ctx context.Context, userID string) (*attendance.AttendanceResponse, error) {
	today := businessDate(s.clk.Now())

	rec, err := s.repo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	resp := toResponse(*rec)
	return &resp, nil
}

func (s *attendanceServiceImpl) ListMine(ctx context.Context, userID string, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	start, err := s.parseDate(startDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate(endDate, "end_date")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	records, err := s.repo.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

func (s *attendanceServiceImpl) MonthlySummary(ctx context.Context, userID string, year int, month int) (attendance.MonthlySummaryResponse, error) {
	if month < 1 || month > 12 {
		return attendance.MonthlySummaryResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be between 1 and 12",
		}}
	}

	summary, err := s.repo.MonthlySummary(ctx, userID, year, time.Month(month))
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to aggregate monthly attendance: %w", err)
	}

	return attendance.MonthlySummaryResponse{
		Year:            year,
		Month:           month,
		TotalRecords:    summary.TotalRecords,
		FullDays:        summary.FullDays,
		HalfDays:        summary.HalfDays,
		TotalDaysWorked: summary.TotalDaysWorked,
	}, nil
}

func (s *attendanceServiceImpl) ListTeamByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	day, err := s.parseDate(date, "date")
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list team attendance: %w", err)
	}

	return toResponses(records), nil
}

// uploadPhoto is best-effort: a storage failure is logged and the punch
// proceeds with a nil reference.
func (s *attendanceServiceImpl) uploadPhoto(ctx context.Context, userID, kind string, photo *attendance.PhotoUpload) *string {
	if !photo.Present() {
		return nil
	}

	ref, err := s.fileSvc.UploadPunchPhoto(ctx, userID, kind, photo.File, photo.Filename)
	if err != nil {
		s.logger.WarnContext(ctx, "punch photo upload failed, continuing without photo",
			slog.String("user_id", userID),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		return nil
	}
	return &ref
}

func (s *attendanceServiceImpl) recordAudit(ctx context.Context, userID, action, details string, relatedID *string) {
	if err := s.audit.Record(ctx, userID, action, details, relatedID); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}

func (s *attendanceServiceImpl) parseDate(value, field string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, s.clk.Location())
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a valid YYYY-MM-DD date",
		}}
	}
	return t, nil
}

// businessDate truncates a timestamp to its calendar day in the business
// timezone.
func businessDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                rec.ID,
		UserID:            rec.UserID,
		UserName:          rec.UserName,
		Date:              rec.Date.Format("2006-01-02"),
		Slot:              rec.Slot,
		PunchInTime:       rec.PunchInTime.Format(timestampLayout),
		PunchInPhotoRef:   rec.PunchInPhotoRef,
		PunchOutPhotoRef:  rec.PunchOutPhotoRef,
		SiteVisitPhotoRef: rec.SiteVisitPhotoRef,
		WorkSummary:       rec.WorkSummary,
		DayCount:          rec.DayCount,
		IsAutoPunchOut:    rec.IsAutoPunchOut,
	}
	if rec.PunchOutTime != nil {
		formatted := rec.PunchOutTime.Format(timestampLayout)
		resp.PunchOutTime = &formatted
		hours := rec.HoursWorked()
		resp.HoursWorked = &hours
	}
	if rec.SiteVisitTime != nil {
		formatted := rec.SiteVisitTime.Format(timestampLayout)
		resp.SiteVisitTime = &formatted
	}
	return resp
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses
}
