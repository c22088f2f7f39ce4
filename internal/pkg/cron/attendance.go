package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
)

// ConsistencyJobs reports staff whose records fail validation. It only logs
// and counts; fixing records is left to the explicit repair endpoint.
type ConsistencyJobs struct {
	attendanceRepo attendance.RecordRepository
	loc            *time.Location
	metrics        *metrics.Recorder
	now            func() time.Time
}

func NewConsistencyJobs(attendanceRepo attendance.RecordRepository, loc *time.Location, recorder *metrics.Recorder) *ConsistencyJobs {
	return &ConsistencyJobs{
		attendanceRepo: attendanceRepo,
		loc:            loc,
		metrics:        recorder,
		now:            time.Now,
	}
}

func (j *ConsistencyJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("scan_inconsistent_records", interval, j.ScanInconsistentRecords)
}

// ScanInconsistentRecords validates every staff member with records in the
// current month.
func (j *ConsistencyJobs) ScanInconsistentRecords(ctx context.Context) (err error) {
	inconsistent := 0
	defer func() { j.metrics.ScanFinished(inconsistent, err) }()

	now := j.now().In(j.loc)
	period := timecalc.MonthPeriod(now.Year(), now.Month(), j.loc)

	slog.Info("Cron: Starting consistency scan", "period", period.String())

	staffIDs, err := j.attendanceRepo.ListStaffIDs(ctx, period.StartInstant(), period.EndExclusive())
	if err != nil {
		return fmt.Errorf("failed to list staff: %w", err)
	}

	for _, staffID := range staffIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := j.attendanceRepo.ListByStaffAndRange(ctx, staffID, period.StartInstant(), period.EndExclusive())
		if err != nil {
			return fmt.Errorf("failed to list records for %s: %w", staffID, err)
		}

		violations := timecalc.FindViolations(attendance.Intervals(records))
		if len(violations) == 0 {
			continue
		}

		inconsistent++
		kinds := make([]string, 0, len(violations))
		for _, v := range violations {
			j.metrics.Violation(string(v.Kind))
			kinds = append(kinds, string(v.Kind))
		}
		slog.Warn("Cron: Inconsistent attendance records",
			"staff_id", staffID,
			"violations", kinds,
		)
	}

	slog.Info("Cron: Consistency scan finished", "staff_checked", len(staffIDs), "inconsistent", inconsistent)
	return nil
}
