package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL; the tests skip when it is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.EnsureSchema(ctx, db))

	_, err = db.Exec(ctx, "TRUNCATE TABLE attendance_records")
	require.NoError(t, err)

	return db
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestAttendanceRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, attendance.Record{
		StaffID:  "staff-1",
		ClockIn:  ts("2023-01-10T09:00:00Z"),
		ClockOut: tsPtr("2023-01-10T18:00:00Z"),
	})
	require.NoError(t, err)

	// spans into January from December
	_, err = repo.Create(ctx, attendance.Record{
		StaffID:  "staff-1",
		ClockIn:  ts("2022-12-31T22:00:00Z"),
		ClockOut: tsPtr("2023-01-01T06:00:00Z"),
	})
	require.NoError(t, err)

	// other staff member
	_, err = repo.Create(ctx, attendance.Record{StaffID: "staff-2", ClockIn: ts("2023-01-10T09:00:00Z")})
	require.NoError(t, err)

	// outside the range
	_, err = repo.Create(ctx, attendance.Record{
		StaffID:  "staff-1",
		ClockIn:  ts("2023-02-02T09:00:00Z"),
		ClockOut: tsPtr("2023-02-02T18:00:00Z"),
	})
	require.NoError(t, err)

	records, err := repo.ListByStaffAndRange(ctx, "staff-1", ts("2023-01-01T00:00:00Z"), ts("2023-02-01T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].ClockIn.Equal(ts("2022-12-31T22:00:00Z")))
	assert.True(t, records[1].ClockIn.Equal(ts("2023-01-10T09:00:00Z")))
	assert.NotEmpty(t, records[0].ID)

	staff, err := repo.ListStaffIDs(ctx, ts("2023-01-01T00:00:00Z"), ts("2023-02-01T00:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, []string{"staff-1", "staff-2"}, staff)
}

func TestAttendanceRepository_UpdatesAndOpenRecords(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	older, err := repo.Create(ctx, attendance.Record{StaffID: "staff-1", ClockIn: ts("2023-01-10T09:00:00Z")})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, attendance.Record{StaffID: "staff-1", ClockIn: ts("2023-01-11T09:00:00Z")})
	require.NoError(t, err)

	open, err := repo.ListOpen(ctx, "staff-1")
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, newer.ID, open[0].ID)

	require.NoError(t, repo.SetBreakStart(ctx, newer.ID, ts("2023-01-11T12:00:00Z")))
	require.NoError(t, repo.SetBreakEnd(ctx, newer.ID, ts("2023-01-11T13:00:00Z")))
	require.NoError(t, repo.SetClockOut(ctx, newer.ID, ts("2023-01-11T18:00:00Z")))

	open, err = repo.ListOpen(ctx, "staff-1")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, older.ID, open[0].ID)

	err = repo.SetClockOut(ctx, "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", ts("2023-01-11T18:00:00Z"))
	assert.True(t, errors.Is(err, attendance.ErrRecordNotFound))

	_, err = repo.DeleteByIDs(ctx, []string{"not-a-uuid"})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	deleted, err := repo.DeleteByIDs(ctx, []string{older.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	open, err = repo.ListOpen(ctx, "staff-1")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, attendance.Record{StaffID: "staff-1", ClockIn: ts("2023-01-10T09:00:00Z")}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	open, err := repo.ListOpen(ctx, "staff-1")
	require.NoError(t, err)
	assert.Empty(t, open)
}
