package timecalc

import "time"

// Interval is one attendance record reduced to the instants the engine needs.
// ClockOut is nil while the record is open. A break counts only when both
// BreakStart and BreakEnd are set.
type Interval struct {
	ClockIn    time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
}

// IsOpen reports whether the record has no clock-out yet.
func (iv Interval) IsOpen() bool {
	return iv.ClockOut == nil
}

// HasBreak reports whether both break instants are present.
func (iv Interval) HasBreak() bool {
	return iv.BreakStart != nil && iv.BreakEnd != nil
}

// Period is a reporting window [Start, midnight after End). Start is an
// instant and is used as given; End names the last day of the window.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month in loc.
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// StartInstant is the first instant inside the window.
func (p Period) StartInstant() time.Time {
	return p.Start
}

// EndExclusive is "24:00 of the last day", i.e. midnight of the day after End.
func (p Period) EndExclusive() time.Time {
	return startOfDay(p.End).AddDate(0, 0, 1)
}

// Contains reports whether t falls inside the half-open window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.StartInstant()) && t.Before(p.EndExclusive())
}

func (p Period) String() string {
	return "[" + p.StartInstant().Format(time.RFC3339) + ", " + p.EndExclusive().Format(time.RFC3339) + ")"
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
