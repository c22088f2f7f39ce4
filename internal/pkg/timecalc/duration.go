package timecalc

import "time"

// WorkDuration is the ceil-rounded time between clock-in and clock-out.
// An open or inverted record yields zero.
func WorkDuration(clockIn time.Time, clockOut *time.Time) Minutes {
	if clockOut == nil {
		return 0
	}
	m := MinutesBetween(clockIn, *clockOut, RoundCeil)
	if m < 0 {
		return 0
	}
	return Minutes(m)
}

// WorkDurationInPeriod is the part of the record that falls inside p, floor-rounded.
// Calling it for two adjacent periods and adding the results splits a record
// across the boundary without double counting.
func WorkDurationInPeriod(clockIn time.Time, clockOut *time.Time, p Period) Minutes {
	start, end, ok := clampToPeriod(clockIn, clockOut, p)
	if !ok {
		return 0
	}
	return Minutes(MinutesBetween(start, end, RoundFloor))
}

// clampToPeriod intersects [clockIn, clockOut) with the period window.
func clampToPeriod(clockIn time.Time, clockOut *time.Time, p Period) (time.Time, time.Time, bool) {
	if clockOut == nil {
		return time.Time{}, time.Time{}, false
	}
	start := later(clockIn, p.StartInstant())
	end := earlier(*clockOut, p.EndExclusive())
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
