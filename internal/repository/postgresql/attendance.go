package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `id, staff_id, clock_in, clock_out, break_start, break_end, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

// LockStaff implements attendance.RecordRepository.
func (a *attendanceRepository) LockStaff(ctx context.Context, staffID string) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); !ok {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, staffID); err != nil {
		return fmt.Errorf("failed to lock staff records: %w", err)
	}
	return nil
}

// Create implements attendance.RecordRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate record id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		INSERT INTO attendance_records (id, staff_id, clock_in, clock_out, break_start, break_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.StaffID,
		record.ClockIn,
		record.ClockOut,
		record.BreakStart,
		record.BreakEnd,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// ListByStaffAndRange implements attendance.RecordRepository.
func (a *attendanceRepository) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE staff_id = $1
		  AND clock_in < $3
		  AND (clock_out IS NULL OR clock_out >= $2)
		ORDER BY clock_in ASC, id ASC
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return collectRecords(rows)
}

// ListOpen implements attendance.RecordRepository.
func (a *attendanceRepository) ListOpen(ctx context.Context, staffID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE staff_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC, id DESC
	`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	return collectRecords(rows)
}

// SetClockOut implements attendance.RecordRepository.
func (a *attendanceRepository) SetClockOut(ctx context.Context, id string, t time.Time) error {
	return a.setField(ctx, "clock_out", id, t)
}

// SetBreakStart implements attendance.RecordRepository.
func (a *attendanceRepository) SetBreakStart(ctx context.Context, id string, t time.Time) error {
	return a.setField(ctx, "break_start", id, t)
}

// SetBreakEnd implements attendance.RecordRepository.
func (a *attendanceRepository) SetBreakEnd(ctx context.Context, id string, t time.Time) error {
	return a.setField(ctx, "break_end", id, t)
}

// column is one of the fixed names above, never user input
func (a *attendanceRepository) setField(ctx context.Context, column, id string, t time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `UPDATE attendance_records SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// DeleteByIDs implements attendance.RecordRepository.
func (a *attendanceRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		if !validator.IsValidUUID(id) {
			return 0, fmt.Errorf("invalid attendance record id %q: %w", id, attendance.ErrRecordNotFound)
		}
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListStaffIDs implements attendance.RecordRepository.
func (a *attendanceRepository) ListStaffIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT DISTINCT staff_id
		FROM attendance_records
		WHERE clock_in < $2
		  AND (clock_out IS NULL OR clock_out >= $1)
		ORDER BY staff_id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan staff ids: %w", err)
	}
	return ids, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Record, error) {
		var r attendance.Record
		err := row.Scan(
			&r.ID, &r.StaffID, &r.ClockIn, &r.ClockOut,
			&r.BreakStart, &r.BreakEnd, &r.CreatedAt, &r.UpdatedAt,
		)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}
	return records, nil
}
