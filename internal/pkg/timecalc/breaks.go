package timecalc

import "time"

// BreakMinutes is the ceil-rounded break length. Unlike worked time, a break
// whose raw length is zero or negative counts as nothing at all.
func BreakMinutes(breakStart, breakEnd *time.Time) int {
	if breakStart == nil || breakEnd == nil {
		return 0
	}
	if breakEnd.Sub(*breakStart).Milliseconds() <= 0 {
		return 0
	}
	return MinutesBetween(*breakStart, *breakEnd, RoundCeil)
}

// ActualWorkDuration is the worked time minus the break, never below zero.
// A shift shorter than one minute is zero regardless of the break, so it does
// not ceil up to "00:01".
func ActualWorkDuration(clockIn time.Time, clockOut, breakStart, breakEnd *time.Time) Minutes {
	if clockOut == nil || shorterThanMinute(clockIn, *clockOut) {
		return 0
	}
	net := int(WorkDuration(clockIn, clockOut)) - BreakMinutes(breakStart, breakEnd)
	if net < 0 {
		return 0
	}
	return Minutes(net)
}

// NetWorkDurationInPeriod applies the break deduction to the part of the record
// inside p. The break is clipped to the same window before it is deducted.
func NetWorkDurationInPeriod(iv Interval, p Period) Minutes {
	start, end, ok := clampToPeriod(iv.ClockIn, iv.ClockOut, p)
	if !ok || shorterThanMinute(start, end) {
		return 0
	}
	gross := MinutesBetween(start, end, RoundFloor)

	var brk int
	if iv.HasBreak() {
		bs := later(*iv.BreakStart, start)
		be := earlier(*iv.BreakEnd, end)
		brk = BreakMinutes(&bs, &be)
	}

	net := gross - brk
	if net < 0 {
		return 0
	}
	return Minutes(net)
}

func shorterThanMinute(a, b time.Time) bool {
	ms := b.Sub(a).Milliseconds()
	return ms < millisPerMinute && ms > -millisPerMinute
}
