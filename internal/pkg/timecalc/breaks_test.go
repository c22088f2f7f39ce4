package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakMinutes(t *testing.T) {
	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  int
	}{
		{"no break", nil, nil, 0},
		{"start only", ptr(at(t, "2023-01-10T12:00:00Z")), nil, 0},
		{"end only", nil, ptr(at(t, "2023-01-10T12:00:00Z")), 0},
		{"one hour", ptr(at(t, "2023-01-10T12:00:00Z")), ptr(at(t, "2023-01-10T13:00:00Z")), 60},
		{"partial minute ceils", ptr(at(t, "2023-01-10T12:00:00Z")), ptr(at(t, "2023-01-10T12:00:10Z")), 1},
		{"zero length", ptr(at(t, "2023-01-10T12:00:00Z")), ptr(at(t, "2023-01-10T12:00:00Z")), 0},
		{"inverted", ptr(at(t, "2023-01-10T13:00:00Z")), ptr(at(t, "2023-01-10T12:00:00Z")), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, BreakMinutes(c.start, c.end))
		})
	}
}

func TestActualWorkDuration(t *testing.T) {
	in := at(t, "2023-01-10T09:00:00Z")

	cases := []struct {
		name       string
		clockOut   *time.Time
		breakStart *time.Time
		breakEnd   *time.Time
		want       string
	}{
		{"shift with lunch", ptr(at(t, "2023-01-10T18:00:00Z")), ptr(at(t, "2023-01-10T12:00:00Z")), ptr(at(t, "2023-01-10T13:00:00Z")), "08:00"},
		{"half-open break is ignored", ptr(at(t, "2023-01-10T18:00:00Z")), ptr(at(t, "2023-01-10T12:00:00Z")), nil, "09:00"},
		{"break longer than shift", ptr(at(t, "2023-01-10T09:30:00Z")), ptr(at(t, "2023-01-10T09:00:00Z")), ptr(at(t, "2023-01-10T11:00:00Z")), "00:00"},
		{"sub-minute shift short-circuits", ptr(at(t, "2023-01-10T09:00:40Z")), nil, nil, "00:00"},
		{"sub-minute shift ignores break", ptr(at(t, "2023-01-10T09:00:40Z")), ptr(at(t, "2023-01-10T09:00:00Z")), ptr(at(t, "2023-01-10T09:00:20Z")), "00:00"},
		{"exactly one minute", ptr(at(t, "2023-01-10T09:01:00Z")), nil, nil, "00:01"},
		{"open record", nil, nil, nil, "00:00"},
		{"inverted record", ptr(at(t, "2023-01-10T08:00:00Z")), nil, nil, "00:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ActualWorkDuration(in, c.clockOut, c.breakStart, c.breakEnd)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestNetWorkDurationInPeriod_SplitsBreakAcrossBoundary(t *testing.T) {
	iv := Interval{
		ClockIn:    at(t, "2023-01-31T20:00:00Z"),
		ClockOut:   ptr(at(t, "2023-02-01T04:00:00Z")),
		BreakStart: ptr(at(t, "2023-01-31T23:30:00Z")),
		BreakEnd:   ptr(at(t, "2023-02-01T00:30:00Z")),
	}

	jan := NetWorkDurationInPeriod(iv, MonthPeriod(2023, time.January, time.UTC))
	feb := NetWorkDurationInPeriod(iv, MonthPeriod(2023, time.February, time.UTC))

	assert.Equal(t, "03:30", jan.String())
	assert.Equal(t, "03:30", feb.String())
	assert.Equal(t, ActualWorkDuration(iv.ClockIn, iv.ClockOut, iv.BreakStart, iv.BreakEnd), jan+feb)
}

func TestNetWorkDurationInPeriod_BreakOutsideWindow(t *testing.T) {
	iv := Interval{
		ClockIn:    at(t, "2023-01-10T09:00:00Z"),
		ClockOut:   ptr(at(t, "2023-01-10T12:00:00Z")),
		BreakStart: ptr(at(t, "2023-01-10T13:00:00Z")),
		BreakEnd:   ptr(at(t, "2023-01-10T14:00:00Z")),
	}

	got := NetWorkDurationInPeriod(iv, MonthPeriod(2023, time.January, time.UTC))

	assert.Equal(t, "03:00", got.String())
}
