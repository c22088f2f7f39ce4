package timecalc

import (
	"testing"
	"time"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad fixture %q: %v", s, err)
	}
	return v
}

func ptr(v time.Time) *time.Time {
	return &v
}

func closed(t *testing.T, in, out string) Interval {
	t.Helper()
	return Interval{ClockIn: at(t, in), ClockOut: ptr(at(t, out))}
}

func open(t *testing.T, in string) Interval {
	t.Helper()
	return Interval{ClockIn: at(t, in)}
}
