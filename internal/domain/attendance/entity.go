package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
)

// Record is one clock-in/clock-out row. ClockOut is nil while the staff
// member is still working; at most one break per record.
type Record struct {
	ID         string
	StaffID    string
	ClockIn    time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Record) IsOpen() bool {
	return r.ClockOut == nil
}

// OnBreak reports a started break that has not ended yet.
func (r Record) OnBreak() bool {
	return r.BreakStart != nil && r.BreakEnd == nil
}

// Interval hands the record to the calculator at millisecond precision.
func (r Record) Interval() timecalc.Interval {
	return timecalc.Interval{
		ClockIn:    r.ClockIn.Truncate(time.Millisecond),
		ClockOut:   truncateMillis(r.ClockOut),
		BreakStart: truncateMillis(r.BreakStart),
		BreakEnd:   truncateMillis(r.BreakEnd),
	}
}

func truncateMillis(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Truncate(time.Millisecond)
	return &v
}

func Intervals(records []Record) []timecalc.Interval {
	ivs := make([]timecalc.Interval, len(records))
	for i, r := range records {
		ivs[i] = r.Interval()
	}
	return ivs
}
