package attendance

import (
	"context"
)

// Service defines business logic for attendance operations
type Service interface {
	// ClockIn opens a new record; refused while another record is open
	ClockIn(ctx context.Context, req ClockRequest) (RecordResponse, error)

	// ClockOut closes the single open record, ending an unfinished break with it
	ClockOut(ctx context.Context, req ClockRequest) (RecordResponse, error)

	StartBreak(ctx context.Context, req ClockRequest) (RecordResponse, error)
	EndBreak(ctx context.Context, req ClockRequest) (RecordResponse, error)

	// MonthlySummary totals one calendar month of stored records
	MonthlySummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// Calculate totals caller-supplied records without touching storage
	Calculate(ctx context.Context, req CalculateRequest) (SummaryResponse, error)

	// CheckConsistency reports validator findings for a date range
	CheckConsistency(ctx context.Context, req ConsistencyRequest) (ConsistencyResponse, error)

	// RepairOpenRecords keeps the newest open record and deletes the others
	RepairOpenRecords(ctx context.Context, req RepairRequest) (RepairResponse, error)
}
