package attendance_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchdesk/attendance-backend-go/internal/config"
	domain "github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	attendancesvc "github.com/punchdesk/attendance-backend-go/internal/service/attendance"
)

// officeLat/officeLng mirror the default office coordinates.
const (
	officeLat = 28.6139
	officeLng = 77.2090
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]domain.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]domain.Attendance)}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, att domain.Attendance) (domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.UserID == att.UserID && existing.Date.Equal(att.Date) {
			return domain.Attendance{}, domain.ErrAlreadyPunchedIn
		}
	}
	r.records[att.ID] = att
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return domain.Attendance{}, domain.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, att domain.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[att.ID]; !ok {
		return domain.ErrAttendanceNotFound
	}
	r.records[att.ID] = att
	return nil
}

func (r *fakeAttendanceRepo) ListOpenByDate(_ context.Context, date time.Time) ([]domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(date) && rec.IsOpen() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListRange(_ context.Context, userID string, start, end time.Time) ([]domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attendance
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) MonthlySummary(_ context.Context, userID string, year int, month time.Month) (domain.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summary domain.MonthlySummary
	for _, rec := range r.records {
		if rec.UserID != userID || rec.Date.Year() != year || rec.Date.Month() != month || rec.DayCount == nil {
			continue
		}
		summary.TotalRecords++
		summary.TotalDaysWorked += *rec.DayCount
		switch *rec.DayCount {
		case 1:
			summary.FullDays++
		case 0.5:
			summary.HalfDays++
		}
	}
	return summary, nil
}

type fakeFileService struct {
	failUploads bool
	uploads     []string
}

func (f *fakeFileService) UploadPunchPhoto(_ context.Context, userID, kind string, _ io.Reader, _ string) (string, error) {
	if f.failUploads {
		return "", errors.New("storage unavailable")
	}
	ref := fmt.Sprintf("photos/%s_%s.jpg", userID, kind)
	f.uploads = append(f.uploads, ref)
	return ref, nil
}

func (f *fakeFileService) UploadReceipt(_ context.Context, userID string, _ io.Reader, _ string) (string, error) {
	if f.failUploads {
		return "", errors.New("storage unavailable")
	}
	ref := fmt.Sprintf("expenses/%s.jpg", userID)
	f.uploads = append(f.uploads, ref)
	return ref, nil
}

type fakeAuditLog struct {
	mu      sync.Mutex
	actions []string
}

func (a *fakeAuditLog) Record(_ context.Context, _ string, action string, _ string, _ *string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func testAttendanceConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		OfficeLatitude:     officeLat,
		OfficeLongitude:    officeLng,
		OfficeRadiusMeters: 100,
		OfficePunchIn:      "10:00",
		OfficePunchOut:     "18:00",
		LateWindowStart:    "10:00",
		LateWindowEnd:      "10:15",
		RecoveryTime:       "19:00",
		HalfDayMinHours:    4,
		FullDayMinHours:    8,
		AutoPunchOutTime:   "23:59",
	}
}

func newTestService(t *testing.T, at string) (domain.Service, *fakeAttendanceRepo, *fakeAuditLog, *clock.Fixed) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-02 "+at, loc)
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	auditLog := &fakeAuditLog{}
	clk := clock.NewFixed(now)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := attendancesvc.NewAttendanceService(repo, &fakeFileService{}, auditLog, clk, testAttendanceConfig(), logger)
	return svc, repo, auditLog, clk
}

func TestPunchInWithinGeofence(t *testing.T) {
	svc, _, auditLog, _ := newTestService(t, "09:00")

	resp, err := svc.PunchIn(context.Background(), domain.PunchInRequest{
		UserID:    "user-1",
		Slot:      domain.SlotOffice,
		Latitude:  officeLat,
		Longitude: officeLng,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AttendanceID)
	assert.Equal(t, domain.SlotOffice, resp.Slot)
	assert.Equal(t, "2026-03-02 09:00:00", resp.PunchInTime)
	assert.Contains(t, auditLog.actions, "PUNCH_IN")
}

func TestPunchInOutsideGeofence(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	// Roughly 150m north of the office.
	_, err := svc.PunchIn(context.Background(), domain.PunchInRequest{
		UserID:    "user-1",
		Slot:      domain.SlotOffice,
		Latitude:  officeLat + 0.00135,
		Longitude: officeLng,
	})

	var geoErr *domain.OutsideGeofenceError
	require.ErrorAs(t, err, &geoErr)
	assert.InDelta(t, 150, geoErr.DistanceMeters, 5)
	assert.Equal(t, float64(100), geoErr.RadiusMeters)
}

func TestPunchInWFHSkipsGeofence(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	// Far from the office; wfh is not geofenced.
	_, err := svc.PunchIn(context.Background(), domain.PunchInRequest{
		UserID:    "user-1",
		Slot:      domain.SlotWFH,
		Latitude:  12.9716,
		Longitude: 77.5946,
	})

	require.NoError(t, err)
}

func TestPunchInTwiceSameDay(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	req := domain.PunchInRequest{
		UserID:    "user-1",
		Slot:      domain.SlotWFH,
		Latitude:  officeLat,
		Longitude: officeLng,
	}

	_, err := svc.PunchIn(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.PunchIn(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAlreadyPunchedIn)
}

func TestPunchInPhotoFailureIsNotFatal(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	repo := newFakeAttendanceRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := attendancesvc.NewAttendanceService(
		repo, &fakeFileService{failUploads: true}, &fakeAuditLog{},
		clock.NewFixed(now), testAttendanceConfig(), logger,
	)

	resp, err := svc.PunchIn(context.Background(), domain.PunchInRequest{
		UserID:    "user-1",
		Slot:      domain.SlotOffice,
		Latitude:  officeLat,
		Longitude: officeLng,
		Photo:     &domain.PhotoUpload{File: bytesReader(), Filename: "selfie.jpg"},
	})

	require.NoError(t, err)
	rec, err := repo.GetByID(context.Background(), resp.AttendanceID)
	require.NoError(t, err)
	assert.Nil(t, rec.PunchInPhotoRef)
}

func TestConvertToSiteVisit(t *testing.T) {
	svc, _, auditLog, clk := newTestService(t, "09:00")
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, domain.PunchInRequest{
		UserID: "user-1", Slot: domain.SlotOffice,
		Latitude: officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	resp, err := svc.ConvertToSiteVisit(ctx, domain.SiteVisitRequest{
		UserID: "user-1", Latitude: 28.70, Longitude: 77.10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotSiteVisit, resp.Slot)
	require.NotNil(t, resp.SiteVisitTime)
	assert.Equal(t, "2026-03-02 10:00:00", *resp.SiteVisitTime)
	assert.Contains(t, auditLog.actions, "SITE_VISIT_CONVERT")

	// One-way: converting again is an error.
	_, err = svc.ConvertToSiteVisit(ctx, domain.SiteVisitRequest{
		UserID: "user-1", Latitude: 28.70, Longitude: 77.10,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyOnSiteVisit)
}

func TestConvertWithoutPunchIn(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	_, err := svc.ConvertToSiteVisit(context.Background(), domain.SiteVisitRequest{
		UserID: "user-1", Latitude: 28.70, Longitude: 77.10,
	})
	assert.ErrorIs(t, err, domain.ErrNoPunchInFound)
}

func TestPunchOutFullCycle(t *testing.T) {
	svc, repo, _, clk := newTestService(t, "10:05")
	ctx := context.Background()

	in, err := svc.PunchIn(ctx, domain.PunchInRequest{
		UserID: "user-1", Slot: domain.SlotOffice,
		Latitude: officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	// 10:05 punch-in, 19:05 punch-out: late arrival recovered.
	clk.Advance(9 * time.Hour)
	out, err := svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:      "user-1",
		WorkSummary: "shipped the release",
		Latitude:    officeLat,
		Longitude:   officeLng,
	})
	require.NoError(t, err)
	assert.Equal(t, in.AttendanceID, out.AttendanceID)
	assert.Equal(t, float64(1), out.DayCount)

	rec, err := repo.GetByID(ctx, in.AttendanceID)
	require.NoError(t, err)
	assert.False(t, rec.IsOpen())
	require.NotNil(t, rec.DayCount)
	assert.Equal(t, float64(1), *rec.DayCount)
}

func TestPunchOutRequiresWorkSummary(t *testing.T) {
	svc, _, _, clk := newTestService(t, "09:00")
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, domain.PunchInRequest{
		UserID: "user-1", Slot: domain.SlotWFH,
		Latitude: officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	clk.Advance(8 * time.Hour)
	_, err = svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:   "user-1",
		Latitude: officeLat, Longitude: officeLng,
	})
	assert.ErrorIs(t, err, domain.ErrWorkSummaryRequired)
}

func TestPunchOutSiteVisitSkipsSummaryAndHours(t *testing.T) {
	svc, _, _, clk := newTestService(t, "09:00")
	ctx := context.Background()

	_, err := svc.PunchIn(ctx, domain.PunchInRequest{
		UserID: "user-1", Slot: domain.SlotOffice,
		Latitude: officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	_, err = svc.ConvertToSiteVisit(ctx, domain.SiteVisitRequest{
		UserID: "user-1", Latitude: 28.70, Longitude: 77.10,
	})
	require.NoError(t, err)

	// Only three hours total, but a site visit is always a full day and the
	// summary is optional.
	clk.Advance(2 * time.Hour)
	out, err := svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:   "user-1",
		Latitude: 28.70, Longitude: 77.10,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), out.DayCount)
}

func TestPunchOutStateErrors(t *testing.T) {
	svc, _, _, clk := newTestService(t, "09:00")
	ctx := context.Background()

	_, err := svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:      "user-1",
		WorkSummary: "nothing yet",
		Latitude:    officeLat, Longitude: officeLng,
	})
	assert.ErrorIs(t, err, domain.ErrNoPunchInFound)

	_, err = svc.PunchIn(ctx, domain.PunchInRequest{
		UserID: "user-1", Slot: domain.SlotOffice,
		Latitude: officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	clk.Advance(9 * time.Hour)
	_, err = svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:      "user-1",
		WorkSummary: "done",
		Latitude:    officeLat, Longitude: officeLng,
	})
	require.NoError(t, err)

	_, err = svc.PunchOut(ctx, domain.PunchOutRequest{
		UserID:      "user-1",
		WorkSummary: "again",
		Latitude:    officeLat, Longitude: officeLng,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyPunchedOut)
}

func TestGetTodayNilWhenNoPunch(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	resp, err := svc.GetToday(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListMineValidatesRange(t *testing.T) {
	svc, _, _, _ := newTestService(t, "09:00")

	_, err := svc.ListMine(context.Background(), "user-1", "2026-03-10", "2026-03-01")
	assert.Error(t, err)

	_, err = svc.ListMine(context.Background(), "user-1", "not-a-date", "2026-03-01")
	assert.Error(t, err)
}

func bytesReader() io.Reader {
	return &fakePhoto{}
}

type fakePhoto struct{}

func (*fakePhoto) Read(p []byte) (int, error) {
	return 0, io.EOF
}
