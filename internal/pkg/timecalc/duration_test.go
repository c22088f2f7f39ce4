package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkDuration(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		want string
	}{
		{"thirty seconds ceils to one minute", "2023-01-10T09:00:00Z", "2023-01-10T09:00:30Z", "00:01"},
		{"59m59s rounds up to the hour", "2023-01-10T09:00:00Z", "2023-01-10T09:59:59Z", "01:00"},
		{"regular shift", "2023-01-10T09:00:00Z", "2023-01-10T18:00:00Z", "09:00"},
		{"overnight with full dates", "2023-01-10T22:00:00Z", "2023-01-11T06:00:00Z", "08:00"},
		{"zero length", "2023-01-10T09:00:00Z", "2023-01-10T09:00:00Z", "00:00"},
		{"inverted by minutes", "2023-01-10T09:00:00Z", "2023-01-10T08:59:00Z", "00:00"},
		{"inverted by days", "2023-01-10T09:00:00Z", "2022-12-01T09:00:00Z", "00:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WorkDuration(at(t, c.in), ptr(at(t, c.out)))
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestWorkDuration_OpenRecord(t *testing.T) {
	assert.Equal(t, Minutes(0), WorkDuration(at(t, "2023-01-10T09:00:00Z"), nil))
}

func TestWorkDurationInPeriod_MonthSpanningInterval(t *testing.T) {
	january := MonthPeriod(2023, time.January, time.UTC)

	got := WorkDurationInPeriod(at(t, "2022-12-31T22:00:00Z"), ptr(at(t, "2023-02-01T06:00:00Z")), january)

	assert.Equal(t, "744:00", got.String())
}

func TestWorkDurationInPeriod_SplitIsAdditive(t *testing.T) {
	clockIn := at(t, "2022-12-31T22:00:00Z")
	clockOut := ptr(at(t, "2023-01-01T06:00:00Z"))

	december := MonthPeriod(2022, time.December, time.UTC)
	january := MonthPeriod(2023, time.January, time.UTC)

	dec := WorkDurationInPeriod(clockIn, clockOut, december)
	jan := WorkDurationInPeriod(clockIn, clockOut, january)

	assert.Equal(t, "02:00", dec.String())
	assert.Equal(t, "06:00", jan.String())
	assert.Equal(t, WorkDuration(clockIn, clockOut), dec+jan)
}

func TestWorkDurationInPeriod_FloorsAtBoundary(t *testing.T) {
	january := MonthPeriod(2023, time.January, time.UTC)

	got := WorkDurationInPeriod(at(t, "2023-01-31T23:58:30Z"), ptr(at(t, "2023-02-01T01:00:00Z")), january)

	assert.Equal(t, Minutes(1), got)
}

func TestWorkDurationInPeriod_Degenerate(t *testing.T) {
	january := MonthPeriod(2023, time.January, time.UTC)

	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut *time.Time
	}{
		{"open record", at(t, "2023-01-10T09:00:00Z"), nil},
		{"entirely before period", at(t, "2022-12-10T09:00:00Z"), ptr(at(t, "2022-12-10T18:00:00Z"))},
		{"entirely after period", at(t, "2023-02-01T00:00:00Z"), ptr(at(t, "2023-02-01T08:00:00Z"))},
		{"inverted", at(t, "2023-01-10T18:00:00Z"), ptr(at(t, "2023-01-10T09:00:00Z"))},
		{"zero length", at(t, "2023-01-10T09:00:00Z"), ptr(at(t, "2023-01-10T09:00:00Z"))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, "00:00", WorkDurationInPeriod(c.clockIn, c.clockOut, january).String())
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	feb := MonthPeriod(2024, time.February, time.UTC)

	assert.Equal(t, at(t, "2024-02-01T00:00:00Z"), feb.StartInstant())
	assert.Equal(t, at(t, "2024-03-01T00:00:00Z"), feb.EndExclusive())
	assert.True(t, feb.Contains(at(t, "2024-02-29T23:59:59Z")))
	assert.False(t, feb.Contains(at(t, "2024-03-01T00:00:00Z")))
	assert.False(t, feb.Contains(at(t, "2024-01-31T23:59:59Z")))
}

func TestPeriod_ArbitraryWindow(t *testing.T) {
	week := Period{
		Start: time.Date(2023, 1, 9, 15, 30, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, at(t, "2023-01-09T15:30:00Z"), week.StartInstant())
	assert.Equal(t, at(t, "2023-01-16T00:00:00Z"), week.EndExclusive())
	assert.False(t, week.Contains(at(t, "2023-01-09T15:29:59Z")))
	assert.True(t, week.Contains(at(t, "2023-01-09T15:30:00Z")))

	// only the part after the window opens counts
	out := at(t, "2023-01-09T18:00:00Z")
	assert.Equal(t, "02:30", WorkDurationInPeriod(at(t, "2023-01-09T12:00:00Z"), &out, week).String())
}
