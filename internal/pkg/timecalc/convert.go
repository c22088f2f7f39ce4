// Package timecalc converts clock-in, clock-out and break timestamps into worked
// durations, period totals and tiered wages.
//
// Every function here is pure: no I/O, no shared state, and a defined result for
// every input. Inverted or half-filled records produce zero, never an error. The
// only errors this package returns come from parsing raw timestamps and from
// building a wage policy.
package timecalc

import (
	"fmt"
	"time"
)

const (
	millisPerMinute = int64(time.Minute / time.Millisecond)
	millisPerHour   = int64(time.Hour / time.Millisecond)
)

// Rounding selects how a partial minute is counted.
// The zero value is invalid and MinutesBetween panics on it.
type Rounding int

const (
	// RoundCeil counts any started minute as a full minute (worked time).
	RoundCeil Rounding = iota + 1
	// RoundFloor drops a partial minute (time clamped to a period boundary).
	RoundFloor
)

func (r Rounding) String() string {
	switch r {
	case RoundCeil:
		return "ceil"
	case RoundFloor:
		return "floor"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// MinutesBetween returns b-a in whole minutes, measured at millisecond precision.
// The sign follows b-a; callers clamp negative results themselves.
func MinutesBetween(a, b time.Time, r Rounding) int {
	ms := b.Sub(a).Milliseconds()
	switch r {
	case RoundCeil:
		return int(ceilDiv(ms, millisPerMinute))
	case RoundFloor:
		return int(floorDiv(ms, millisPerMinute))
	default:
		panic("timecalc: unknown rounding " + r.String())
	}
}

// Minutes is a non-negative duration in whole minutes.
type Minutes int

// String renders the duration as "HH:mm".
func (m Minutes) String() string {
	return FormatMinutes(int(m))
}

// FormatMinutes renders total minutes as "HH:mm". Hours are not capped at 24,
// so a month total renders as e.g. "744:00". Negative input renders as "00:00".
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
