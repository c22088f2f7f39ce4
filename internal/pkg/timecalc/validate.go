package timecalc

import (
	"sort"
	"time"
)

// ViolationKind names a structural problem in a record list.
type ViolationKind string

const (
	ViolationMultipleOpen ViolationKind = "multiple_open"
	ViolationOpenNotLast  ViolationKind = "open_not_last"
	ViolationInverted     ViolationKind = "inverted"
	ViolationOverlap      ViolationKind = "overlap"
)

// Violation points at the record (by clock-in) where a check failed.
type Violation struct {
	Kind    ViolationKind
	ClockIn time.Time
}

// HasSingleOpenRecord reports whether at most one record lacks a clock-out.
func HasSingleOpenRecord(ivs []Interval) bool {
	return countOpen(ivs) <= 1
}

// IsChronological is the strict check: sorted by clock-in, every record but the
// last is closed and ends strictly before the next one starts. Identical
// duplicates are skipped.
func IsChronological(ivs []Interval) bool {
	return len(FindViolations(ivs)) == 0
}

// FindViolations lists every failure of the strict check.
// It never modifies or repairs the input.
func FindViolations(ivs []Interval) []Violation {
	var out []Violation

	sorted := sortedByClockIn(ivs)
	if countOpen(sorted) > 1 {
		for _, iv := range sorted {
			if iv.IsOpen() {
				out = append(out, Violation{Kind: ViolationMultipleOpen, ClockIn: iv.ClockIn})
			}
		}
	}

	var prev *Interval
	for i := range sorted {
		cur := &sorted[i]
		if prev != nil && sameSpan(*prev, *cur) {
			continue
		}

		if cur.ClockOut != nil && cur.ClockOut.Before(cur.ClockIn) {
			out = append(out, Violation{Kind: ViolationInverted, ClockIn: cur.ClockIn})
		}

		if prev != nil {
			switch {
			case prev.ClockOut == nil:
				out = append(out, Violation{Kind: ViolationOpenNotLast, ClockIn: prev.ClockIn})
			case !prev.ClockOut.Before(cur.ClockIn):
				out = append(out, Violation{Kind: ViolationOverlap, ClockIn: cur.ClockIn})
			}
		}
		prev = cur
	}
	return out
}

func countOpen(ivs []Interval) int {
	n := 0
	for _, iv := range ivs {
		if iv.IsOpen() {
			n++
		}
	}
	return n
}

func sameSpan(a, b Interval) bool {
	if !a.ClockIn.Equal(b.ClockIn) {
		return false
	}
	if a.ClockOut == nil || b.ClockOut == nil {
		return a.ClockOut == nil && b.ClockOut == nil
	}
	return a.ClockOut.Equal(*b.ClockOut)
}

func sortedByClockIn(ivs []Interval) []Interval {
	out := append([]Interval(nil), ivs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClockIn.Before(out[j].ClockIn)
	})
	return out
}
