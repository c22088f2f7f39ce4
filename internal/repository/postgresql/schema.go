package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

const attendanceSchema = `
	CREATE TABLE IF NOT EXISTS attendance_records (
		id          UUID PRIMARY KEY,
		staff_id    TEXT        NOT NULL,
		clock_in    TIMESTAMPTZ NOT NULL,
		clock_out   TIMESTAMPTZ NULL,
		break_start TIMESTAMPTZ NULL,
		break_end   TIMESTAMPTZ NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_records_staff_clock_in
		ON attendance_records (staff_id, clock_in);

	CREATE INDEX IF NOT EXISTS idx_attendance_records_open
		ON attendance_records (staff_id) WHERE clock_out IS NULL;
`

// EnsureSchema creates the attendance tables when they are missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, attendanceSchema); err != nil {
		return fmt.Errorf("failed to ensure attendance schema: %w", err)
	}
	return nil
}
