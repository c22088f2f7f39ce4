package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
type RecordRepository interface {
	// LockStaff serialises writers for one staff member until the current
	// transaction ends. Outside a transaction it is a no-op.
	LockStaff(ctx context.Context, staffID string) error

	// Create inserts a new open record
	Create(ctx context.Context, record Record) (Record, error)

	// ListByStaffAndRange returns records that clock in before to and are open
	// or clock out at/after from, ordered by clock-in.
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]Record, error)

	// ListOpen returns open records, newest clock-in first
	ListOpen(ctx context.Context, staffID string) ([]Record, error)

	SetClockOut(ctx context.Context, id string, t time.Time) error
	SetBreakStart(ctx context.Context, id string, t time.Time) error
	SetBreakEnd(ctx context.Context, id string, t time.Time) error

	// DeleteByIDs is only used by the explicit repair operation
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)

	// ListStaffIDs returns staff with at least one record overlapping [from, to)
	ListStaffIDs(ctx context.Context, from, to time.Time) ([]string, error)
}
