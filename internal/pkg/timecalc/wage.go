package timecalc

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTier       = errors.New("invalid wage tier")
	ErrRateTableNotTotal = errors.New("wage tiers must cover every hour of the day exactly once")
)

// Tier names of the reference policy.
const (
	TierNormal       = "normal"
	TierEvening      = "evening"
	TierLateNight    = "late_night"
	TierEarlyMorning = "early_morning"
)

var millisPerHourDec = decimal.NewFromInt(millisPerHour)

// RateTier prices the hours [StartHour, EndHour) of every calendar day.
// EndHour may be 24. A band that wraps past midnight is written as two tiers.
type RateTier struct {
	Name      string
	StartHour int
	EndHour   int
	Rate      decimal.Decimal
}

// DefaultTiers is the reference table: normal 06-22, evening 22-24,
// late night 00-03, and 03-06 priced at the normal rate.
func DefaultTiers() []RateTier {
	normal := decimal.NewFromInt(1000)
	return []RateTier{
		{Name: TierLateNight, StartHour: 0, EndHour: 3, Rate: decimal.NewFromInt(1500)},
		{Name: TierEarlyMorning, StartHour: 3, EndHour: 6, Rate: normal},
		{Name: TierNormal, StartHour: 6, EndHour: 22, Rate: normal},
		{Name: TierEvening, StartHour: 22, EndHour: 24, Rate: decimal.NewFromInt(1250)},
	}
}

// WagePolicy is a validated rate table bound to the time zone whose wall clock
// decides which tier applies. It is read-only once built.
type WagePolicy struct {
	tiers      []RateTier
	hourTier   [24]int
	boundaries []int
	loc        *time.Location
}

// NewWagePolicy validates tiers and indexes them by hour of day.
func NewWagePolicy(tiers []RateTier, loc *time.Location) (WagePolicy, error) {
	if loc == nil {
		loc = time.UTC
	}

	p := WagePolicy{
		tiers: append([]RateTier(nil), tiers...),
		loc:   loc,
	}
	for h := range p.hourTier {
		p.hourTier[h] = -1
	}

	for i, t := range p.tiers {
		if t.StartHour < 0 || t.EndHour > 24 || t.StartHour >= t.EndHour {
			return WagePolicy{}, fmt.Errorf("%w: %q spans %d-%d", ErrInvalidTier, t.Name, t.StartHour, t.EndHour)
		}
		if t.Rate.IsNegative() {
			return WagePolicy{}, fmt.Errorf("%w: %q has negative rate %s", ErrInvalidTier, t.Name, t.Rate)
		}
		for h := t.StartHour; h < t.EndHour; h++ {
			if p.hourTier[h] != -1 {
				return WagePolicy{}, fmt.Errorf("%w: hour %d is in %q and %q", ErrRateTableNotTotal, h, p.tiers[p.hourTier[h]].Name, t.Name)
			}
			p.hourTier[h] = i
		}
		p.boundaries = append(p.boundaries, t.StartHour)
	}

	for h, idx := range p.hourTier {
		if idx == -1 {
			return WagePolicy{}, fmt.Errorf("%w: hour %d has no tier", ErrRateTableNotTotal, h)
		}
	}

	sort.Ints(p.boundaries)
	return p, nil
}

// DefaultWagePolicy is the reference table in loc.
func DefaultWagePolicy(loc *time.Location) WagePolicy {
	p, err := NewWagePolicy(DefaultTiers(), loc)
	if err != nil {
		panic(err)
	}
	return p
}

// Location is the time zone used for hour-of-day lookups.
func (p WagePolicy) Location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}

// Tiers returns a copy of the rate table.
func (p WagePolicy) Tiers() []RateTier {
	return append([]RateTier(nil), p.tiers...)
}

// TierAt returns the tier in force at t.
func (p WagePolicy) TierAt(t time.Time) RateTier {
	return p.tiers[p.hourTier[t.In(p.Location()).Hour()]]
}

// Wage prices the worked interval tier by tier and rounds half-up to whole
// currency units.
//
// A clock-out not strictly after the clock-in is read as an overnight shift
// and moved forward one day, so equal instants price a full 24 hours. If the
// moved clock-out is still not after the clock-in the record is priced at
// zero. A break is deducted by exact intersection with each slot.
func (p WagePolicy) Wage(iv Interval) decimal.Decimal {
	if iv.ClockOut == nil {
		return decimal.Zero
	}

	end := *iv.ClockOut
	if !end.After(iv.ClockIn) {
		end = end.Add(24 * time.Hour)
	}

	var breakStart, breakEnd time.Time
	hasBreak := iv.HasBreak() && iv.BreakEnd.After(*iv.BreakStart)
	if hasBreak {
		breakStart, breakEnd = *iv.BreakStart, *iv.BreakEnd
	}

	// rate x milliseconds, divided into hours once at the end
	acc := decimal.Zero
	for cur := iv.ClockIn; cur.Before(end); {
		slotEnd := earlier(p.nextBoundary(cur), end)

		ms := slotEnd.Sub(cur).Milliseconds()
		if hasBreak {
			ms -= overlapMillis(cur, slotEnd, breakStart, breakEnd)
		}
		if ms > 0 {
			acc = acc.Add(p.TierAt(cur).Rate.Mul(decimal.NewFromInt(ms)))
		}

		cur = slotEnd
	}

	amount := acc.Div(millisPerHourDec).Round(0)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// nextBoundary is the first tier start strictly after t, today or tomorrow.
func (p WagePolicy) nextBoundary(t time.Time) time.Time {
	local := t.In(p.Location())
	y, m, d := local.Date()
	for day := 0; day <= 1; day++ {
		for _, h := range p.boundaries {
			b := time.Date(y, m, d+day, h, 0, 0, 0, p.Location())
			if b.After(t) {
				return b
			}
		}
	}
	return time.Date(y, m, d+2, 0, 0, 0, 0, p.Location())
}

func overlapMillis(aStart, aEnd, bStart, bEnd time.Time) int64 {
	s := later(aStart, bStart)
	e := earlier(aEnd, bEnd)
	if !s.Before(e) {
		return 0
	}
	return e.Sub(s).Milliseconds()
}
