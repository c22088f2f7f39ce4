package timecalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCapMinutes is the monthly ceiling on counted minutes (160 hours).
const DefaultCapMinutes = 160 * 60

// Line is one closed record's contribution to a Summary.
type Line struct {
	ClockIn time.Time
	Minutes Minutes
	Wage    decimal.Decimal
}

// Summary is the rollup of one period.
type Summary struct {
	Period       Period
	TotalMinutes Minutes
	// Capped is set when TotalMinutes was clamped to the cap.
	Capped    bool
	TotalWage decimal.Decimal
	Closed    int
	Open      int
	Lines     []Line
}

// Aggregator folds records into period totals.
//
// The minute total is clamped at CapMinutes; CapMinutes <= 0 disables the cap.
// Wages are summed independently and are not capped.
type Aggregator struct {
	Policy     WagePolicy
	CapMinutes int
}

func NewAggregator(policy WagePolicy, capMinutes int) Aggregator {
	return Aggregator{Policy: policy, CapMinutes: capMinutes}
}

// Summarize counts gross worked time inside p.
func (a Aggregator) Summarize(p Period, ivs []Interval) Summary {
	return a.summarize(p, ivs, func(iv Interval) Minutes {
		return WorkDurationInPeriod(iv.ClockIn, iv.ClockOut, p)
	})
}

// SummarizeNet counts worked time inside p after break deduction.
func (a Aggregator) SummarizeNet(p Period, ivs []Interval) Summary {
	return a.summarize(p, ivs, func(iv Interval) Minutes {
		return NetWorkDurationInPeriod(iv, p)
	})
}

func (a Aggregator) summarize(p Period, ivs []Interval, minutesOf func(Interval) Minutes) Summary {
	s := Summary{Period: p, TotalWage: decimal.Zero}

	capReached := false
	for _, iv := range sortedByClockIn(ivs) {
		if iv.IsOpen() {
			s.Open++
			continue
		}
		s.Closed++

		line := Line{ClockIn: iv.ClockIn, Minutes: minutesOf(iv), Wage: decimal.Zero}

		// each record is paid in the period holding its clock-in
		if p.Contains(iv.ClockIn) {
			line.Wage = a.Policy.Wage(iv)
			s.TotalWage = s.TotalWage.Add(line.Wage)
		}
		s.Lines = append(s.Lines, line)

		if capReached {
			continue
		}
		if a.CapMinutes > 0 && int(s.TotalMinutes+line.Minutes) > a.CapMinutes {
			s.TotalMinutes = Minutes(a.CapMinutes)
			s.Capped = true
			capReached = true
			continue
		}
		s.TotalMinutes += line.Minutes
	}
	return s
}
