package timecalc

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// zonedLayouts carry their own offset; localLayouts are read in the caller's zone.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
)

// RawRecord is an attendance record as the data store hands it over.
type RawRecord struct {
	ClockIn    string  `json:"clock_in" yaml:"clock_in"`
	ClockOut   *string `json:"clock_out" yaml:"clock_out"`
	BreakStart *string `json:"break_start" yaml:"break_start"`
	BreakEnd   *string `json:"break_end" yaml:"break_end"`
}

// ParseError reports the field and value that could not be read.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q as an ISO-8601 timestamp", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidTimestamp
}

// ParseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// taken as wall-clock time in loc. The result is truncated to the millisecond,
// the precision every calculation here works at.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(time.Millisecond), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Millisecond), true
		}
	}
	return time.Time{}, false
}

// ParseRecord converts r into an Interval. Nil or blank optional fields stay nil.
func ParseRecord(r RawRecord, loc *time.Location) (Interval, error) {
	clockIn, ok := ParseTimestamp(r.ClockIn, loc)
	if !ok {
		return Interval{}, &ParseError{Field: "clock_in", Value: r.ClockIn}
	}

	iv := Interval{ClockIn: clockIn}
	optional := []struct {
		field string
		raw   *string
		dst   **time.Time
	}{
		{"clock_out", r.ClockOut, &iv.ClockOut},
		{"break_start", r.BreakStart, &iv.BreakStart},
		{"break_end", r.BreakEnd, &iv.BreakEnd},
	}
	for _, o := range optional {
		if o.raw == nil || strings.TrimSpace(*o.raw) == "" {
			continue
		}
		t, ok := ParseTimestamp(*o.raw, loc)
		if !ok {
			return Interval{}, &ParseError{Field: o.field, Value: *o.raw}
		}
		*o.dst = &t
	}
	return iv, nil
}

// ParseRecords parses every record, stopping at the first failure.
func ParseRecords(rs []RawRecord, loc *time.Location) ([]Interval, error) {
	out := make([]Interval, 0, len(rs))
	for i, r := range rs {
		iv, err := ParseRecord(r, loc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, iv)
	}
	return out, nil
}
