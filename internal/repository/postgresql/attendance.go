package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, date, slot,
	punch_in_time, punch_in_latitude, punch_in_longitude, punch_in_photo_ref,
	site_visit_time, site_visit_latitude, site_visit_longitude, site_visit_photo_ref,
	punch_out_time, punch_out_latitude, punch_out_longitude, punch_out_photo_ref,
	work_summary, day_count, is_auto_punch_out,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.Slot,
		&att.PunchInTime, &att.PunchInLatitude, &att.PunchInLongitude, &att.PunchInPhotoRef,
		&att.SiteVisitTime, &att.SiteVisitLatitude, &att.SiteVisitLongitude, &att.SiteVisitPhotoRef,
		&att.PunchOutTime, &att.PunchOutLatitude, &att.PunchOutLongitude, &att.PunchOutPhotoRef,
		&att.WorkSummary, &att.DayCount, &att.IsAutoPunchOut,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository. A unique violation on the
// (user_id, date) index is surfaced as ErrAlreadyPunchedIn so concurrent
// double-submits collapse into the same error as the application check.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, date, slot,
			punch_in_time, punch_in_latitude, punch_in_longitude, punch_in_photo_ref,
			is_auto_punch_out
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.Date,
		att.Slot,
		att.PunchInTime,
		att.PunchInLatitude,
		att.PunchInLongitude,
		att.PunchInPhotoRef,
		att.IsAutoPunchOut,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date = $2
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			slot = $2,
			site_visit_time = $3, site_visit_latitude = $4,
			site_visit_longitude = $5, site_visit_photo_ref = $6,
			punch_out_time = $7, punch_out_latitude = $8,
			punch_out_longitude = $9, punch_out_photo_ref = $10,
			work_summary = $11, day_count = $12, is_auto_punch_out = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.Slot,
		att.SiteVisitTime, att.SiteVisitLatitude,
		att.SiteVisitLongitude, att.SiteVisitPhotoRef,
		att.PunchOutTime, att.PunchOutLatitude,
		att.PunchOutLongitude, att.PunchOutPhotoRef,
		att.WorkSummary, att.DayCount, att.IsAutoPunchOut,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListOpenByDate implements attendance.Repository.
func (a *attendanceRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1 AND punch_out_time IS NULL
		ORDER BY punch_in_time`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByDate implements attendance.Repository. Joins the user name for the
// admin team view.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.slot,
			   a.punch_in_time, a.punch_in_latitude, a.punch_in_longitude, a.punch_in_photo_ref,
			   a.site_visit_time, a.site_visit_latitude, a.site_visit_longitude, a.site_visit_photo_ref,
			   a.punch_out_time, a.punch_out_latitude, a.punch_out_longitude, a.punch_out_photo_ref,
			   a.work_summary, a.day_count, a.is_auto_punch_out,
			   a.created_at, a.updated_at,
			   u.name
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.Slot,
			&att.PunchInTime, &att.PunchInLatitude, &att.PunchInLongitude, &att.PunchInPhotoRef,
			&att.SiteVisitTime, &att.SiteVisitLatitude, &att.SiteVisitLongitude, &att.SiteVisitPhotoRef,
			&att.PunchOutTime, &att.PunchOutLatitude, &att.PunchOutLongitude, &att.PunchOutPhotoRef,
			&att.WorkSummary, &att.DayCount, &att.IsAutoPunchOut,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}

// MonthlySummary implements attendance.Repository.
func (a *attendanceRepository) MonthlySummary(ctx context.Context, userID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE day_count IS NOT NULL),
			COUNT(*) FILTER (WHERE day_count = 1),
			COUNT(*) FILTER (WHERE day_count = 0.5),
			COALESCE(SUM(day_count), 0)
		FROM attendance_records
		WHERE user_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
	`

	var summary attendance.MonthlySummary
	err := q.QueryRow(ctx, query, userID, year, int(month)).Scan(
		&summary.TotalRecords,
		&summary.FullDays,
		&summary.HalfDays,
		&summary.TotalDaysWorked,
	)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to aggregate monthly attendance: %w", err)
	}

	return summary, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}
	return records, nil
}
