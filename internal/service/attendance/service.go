package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// Transactor groups repository calls into one unit of work.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttendanceServiceImpl struct {
	repo        attendance.RecordRepository
	tx          Transactor
	aggregator  timecalc.Aggregator
	netOfBreaks bool
	metrics     *metrics.Recorder
	now         func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

// WithNetOfBreaks makes every summary deduct breaks, not only requests asking for it.
func WithNetOfBreaks(net bool) Option {
	return func(s *AttendanceServiceImpl) {
		s.netOfBreaks = net
	}
}

func NewAttendanceService(
	repo attendance.RecordRepository,
	tx Transactor,
	aggregator timecalc.Aggregator,
	recorder *metrics.Recorder,
	opts ...Option,
) attendance.Service {
	s := &AttendanceServiceImpl{
		repo:       repo,
		tx:         tx,
		aggregator: aggregator,
		metrics:    recorder,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe is deferred as `defer s.observe(op, &err)()` so the final error is recorded.
func (s *AttendanceServiceImpl) observe(operation string, err *error) func() {
	started := time.Now()
	return func() {
		s.metrics.ObserveOperation(operation, started, *err)
	}
}

// clock is the current instant at the millisecond precision records are
// calculated with.
func (s *AttendanceServiceImpl) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *AttendanceServiceImpl) location() *time.Location {
	return s.aggregator.Policy.Location()
}

// ClockIn implements attendance.Service.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (resp attendance.RecordResponse, err error) {
	defer s.observe("clock_in", &err)()
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	var created attendance.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockStaff(ctx, req.StaffID); err != nil {
			return err
		}

		open, err := s.repo.ListOpen(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to check open records: %w", err)
		}
		if len(open) > 0 {
			return attendance.ErrAlreadyClockedIn
		}

		created, err = s.repo.Create(ctx, attendance.Record{
			StaffID: req.StaffID,
			ClockIn: s.clock(),
		})
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Staff clocked in", "staff_id", req.StaffID, "record_id", created.ID)
	return attendance.NewRecordResponse(created, s.location()), nil
}

// ClockOut implements attendance.Service.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (resp attendance.RecordResponse, err error) {
	defer s.observe("clock_out", &err)()

	record, err := s.withOpenRecord(ctx, req, func(ctx context.Context, r *attendance.Record) error {
		now := s.clock()

		// an unfinished break ends with the shift
		if r.OnBreak() {
			if err := s.repo.SetBreakEnd(ctx, r.ID, now); err != nil {
				return err
			}
			r.BreakEnd = &now
		}

		if err := s.repo.SetClockOut(ctx, r.ID, now); err != nil {
			return err
		}
		r.ClockOut = &now
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Staff clocked out", "staff_id", req.StaffID, "record_id", record.ID)
	return attendance.NewRecordResponse(record, s.location()), nil
}

// StartBreak implements attendance.Service.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.ClockRequest) (resp attendance.RecordResponse, err error) {
	defer s.observe("break_start", &err)()

	record, err := s.withOpenRecord(ctx, req, func(ctx context.Context, r *attendance.Record) error {
		if r.BreakStart != nil {
			return attendance.ErrBreakAlreadyStarted
		}
		now := s.clock()
		if err := s.repo.SetBreakStart(ctx, r.ID, now); err != nil {
			return err
		}
		r.BreakStart = &now
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Staff started break", "staff_id", req.StaffID, "record_id", record.ID)
	return attendance.NewRecordResponse(record, s.location()), nil
}

// EndBreak implements attendance.Service.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.ClockRequest) (resp attendance.RecordResponse, err error) {
	defer s.observe("break_end", &err)()

	record, err := s.withOpenRecord(ctx, req, func(ctx context.Context, r *attendance.Record) error {
		if r.BreakStart == nil {
			return attendance.ErrBreakNotStarted
		}
		if r.BreakEnd != nil {
			return attendance.ErrBreakAlreadyEnded
		}
		now := s.clock()
		if err := s.repo.SetBreakEnd(ctx, r.ID, now); err != nil {
			return err
		}
		r.BreakEnd = &now
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Staff ended break", "staff_id", req.StaffID, "record_id", record.ID)
	return attendance.NewRecordResponse(record, s.location()), nil
}

// withOpenRecord runs fn on the staff member's only open record inside a
// transaction. It never picks one of several open records.
func (s *AttendanceServiceImpl) withOpenRecord(ctx context.Context, req attendance.ClockRequest, fn func(ctx context.Context, r *attendance.Record) error) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var record attendance.Record
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockStaff(ctx, req.StaffID); err != nil {
			return err
		}

		open, err := s.repo.ListOpen(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to get open records: %w", err)
		}
		switch {
		case len(open) == 0:
			return attendance.ErrNotClockedIn
		case len(open) > 1:
			slog.Warn("Refusing to pick between open records", "staff_id", req.StaffID, "open_records", len(open))
			return attendance.ErrInconsistentRecords
		}

		record = open[0]
		return fn(ctx, &record)
	})
	return record, err
}

// MonthlySummary implements attendance.Service.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, req attendance.SummaryRequest) (resp attendance.SummaryResponse, err error) {
	defer s.observe("monthly_summary", &err)()
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	year, month := req.YearMonth()
	period := timecalc.MonthPeriod(year, month, s.location())

	records, err := s.repo.ListByStaffAndRange(ctx, req.StaffID, period.StartInstant(), period.EndExclusive())
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return s.summarize(req.StaffID, period, attendance.Intervals(records), req.Net), nil
}

// Calculate implements attendance.Service.
func (s *AttendanceServiceImpl) Calculate(ctx context.Context, req attendance.CalculateRequest) (resp attendance.SummaryResponse, err error) {
	defer s.observe("calculate", &err)()
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	loc := s.location()
	ivs, err := timecalc.ParseRecords(req.Records, loc)
	if err != nil {
		return attendance.SummaryResponse{}, validator.ValidationErrors{
			{Field: "records", Message: err.Error()},
		}
	}

	period := timecalc.MonthPeriod(req.Year, time.Month(req.Month), loc)
	return s.summarize("", period, ivs, req.Net), nil
}

func (s *AttendanceServiceImpl) summarize(staffID string, period timecalc.Period, ivs []timecalc.Interval, net bool) attendance.SummaryResponse {
	if violations := s.inspect(staffID, ivs); len(violations) > 0 {
		return attendance.InconsistentSummary(period)
	}

	var summary timecalc.Summary
	if net || s.netOfBreaks {
		summary = s.aggregator.SummarizeNet(period, ivs)
	} else {
		summary = s.aggregator.Summarize(period, ivs)
	}

	if summary.Capped {
		s.metrics.SummaryCapped()
		slog.Info("Monthly total clamped to cap",
			"staff_id", staffID,
			"period", period.String(),
			"cap_minutes", s.aggregator.CapMinutes,
		)
	}

	return attendance.NewSummaryResponse(summary, s.location())
}

// inspect runs the strict validator and reports every finding.
func (s *AttendanceServiceImpl) inspect(staffID string, ivs []timecalc.Interval) []timecalc.Violation {
	violations := timecalc.FindViolations(ivs)
	for _, v := range violations {
		s.metrics.Violation(string(v.Kind))
		slog.Warn("Attendance record inconsistency",
			"staff_id", staffID,
			"kind", v.Kind,
			"clock_in", v.ClockIn,
		)
	}
	return violations
}

// CheckConsistency implements attendance.Service.
func (s *AttendanceServiceImpl) CheckConsistency(ctx context.Context, req attendance.ConsistencyRequest) (resp attendance.ConsistencyResponse, err error) {
	defer s.observe("check_consistency", &err)()
	if err := req.Validate(); err != nil {
		return attendance.ConsistencyResponse{}, err
	}

	loc := s.location()
	period := req.Period(loc)

	records, err := s.repo.ListByStaffAndRange(ctx, req.StaffID, period.StartInstant(), period.EndExclusive())
	if err != nil {
		return attendance.ConsistencyResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	ivs := attendance.Intervals(records)
	violations := s.inspect(req.StaffID, ivs)

	resp = attendance.ConsistencyResponse{
		StaffID:          req.StaffID,
		Period:           period.String(),
		Consistent:       len(violations) == 0,
		SingleOpenRecord: timecalc.HasSingleOpenRecord(ivs),
		Chronological:    timecalc.IsChronological(ivs),
		Violations:       make([]attendance.ViolationResponse, 0, len(violations)),
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, attendance.ViolationResponse{
			Kind:    string(v.Kind),
			ClockIn: v.ClockIn.In(loc).Format(time.RFC3339),
		})
	}
	return resp, nil
}

// RepairOpenRecords implements attendance.Service.
func (s *AttendanceServiceImpl) RepairOpenRecords(ctx context.Context, req attendance.RepairRequest) (resp attendance.RepairResponse, err error) {
	defer s.observe("repair_open_records", &err)()
	if err := req.Validate(); err != nil {
		return attendance.RepairResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.LockStaff(ctx, req.StaffID); err != nil {
			return err
		}

		open, err := s.repo.ListOpen(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to get open records: %w", err)
		}
		if len(open) < 2 {
			return attendance.ErrNothingToRepair
		}

		// newest first; keep open[0]
		ids := make([]string, 0, len(open)-1)
		for _, r := range open[1:] {
			ids = append(ids, r.ID)
		}

		deleted, err := s.repo.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}

		resp = attendance.RepairResponse{
			StaffID:        req.StaffID,
			KeptRecordID:   open[0].ID,
			DeletedRecords: deleted,
		}
		return nil
	})
	if err != nil {
		return attendance.RepairResponse{}, err
	}

	s.metrics.RecordsRepaired(resp.DeletedRecords)
	slog.Warn("Deleted superfluous open records",
		"staff_id", req.StaffID,
		"kept_record_id", resp.KeptRecordID,
		"deleted", resp.DeletedRecords,
	)
	return resp, nil
}
