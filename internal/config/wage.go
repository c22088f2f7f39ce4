package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const wageEnvPrefix = "WAGE_"

// TierConfig is one row of the rate table. Rate is a decimal string so that
// fractional currency survives YAML.
type TierConfig struct {
	Name      string `koanf:"name" json:"name"`
	StartHour int    `koanf:"start_hour" json:"start_hour"`
	EndHour   int    `koanf:"end_hour" json:"end_hour"`
	Rate      string `koanf:"rate" json:"rate"`
}

// WageConfig is the read-only pay policy handed to the wage engine and the
// monthly aggregator.
type WageConfig struct {
	// Timezone decides which wall-clock hour a worked minute falls in.
	Timezone string `koanf:"timezone" json:"timezone"`

	// MonthlyCapMinutes bounds the counted monthly total; 0 disables the cap.
	MonthlyCapMinutes int `koanf:"monthly_cap_minutes" json:"monthly_cap_minutes"`

	// NetOfBreaks makes summaries deduct breaks from counted minutes.
	NetOfBreaks bool `koanf:"net_of_breaks" json:"net_of_breaks"`

	Tiers []TierConfig `koanf:"tiers" json:"tiers"`
}

// DefaultWageConfig is the reference policy.
func DefaultWageConfig() WageConfig {
	cfg := WageConfig{
		Timezone:          "Asia/Tokyo",
		MonthlyCapMinutes: timecalc.DefaultCapMinutes,
	}
	for _, t := range timecalc.DefaultTiers() {
		cfg.Tiers = append(cfg.Tiers, TierConfig{
			Name:      t.Name,
			StartHour: t.StartHour,
			EndHour:   t.EndHour,
			Rate:      t.Rate.String(),
		})
	}
	return cfg
}

// LoadWageConfig layers the wage policy, lowest precedence first:
//  1. DefaultWageConfig
//  2. YAML file at path, when path is not empty
//  3. env vars prefixed WAGE_ (WAGE_TIMEZONE, WAGE_MONTHLY_CAP_MINUTES, WAGE_NET_OF_BREAKS)
//
// A file that lists tiers replaces the default table as a whole.
func LoadWageConfig(path string) (WageConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return WageConfig{}, fmt.Errorf("load wage policy %s: %w", path, err)
		}
	}

	envProvider := env.Provider(wageEnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, wageEnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return WageConfig{}, fmt.Errorf("load wage env: %w", err)
	}

	var cfg WageConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return WageConfig{}, fmt.Errorf("decode wage policy: %w", err)
	}

	def := DefaultWageConfig()
	if cfg.Timezone == "" {
		cfg.Timezone = def.Timezone
	}
	if !k.Exists("monthly_cap_minutes") {
		cfg.MonthlyCapMinutes = def.MonthlyCapMinutes
	}
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = def.Tiers
	}

	if _, err := cfg.Policy(); err != nil {
		return WageConfig{}, err
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c WageConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid wage timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy builds the validated rate table.
func (c WageConfig) Policy() (timecalc.WagePolicy, error) {
	loc, err := c.Location()
	if err != nil {
		return timecalc.WagePolicy{}, err
	}

	tiers := make([]timecalc.RateTier, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		rate, err := decimal.NewFromString(strings.TrimSpace(t.Rate))
		if err != nil {
			return timecalc.WagePolicy{}, fmt.Errorf("%w: %q has rate %q", timecalc.ErrInvalidTier, t.Name, t.Rate)
		}
		tiers = append(tiers, timecalc.RateTier{
			Name:      t.Name,
			StartHour: t.StartHour,
			EndHour:   t.EndHour,
			Rate:      rate,
		})
	}
	return timecalc.NewWagePolicy(tiers, loc)
}

// Aggregator builds the monthly aggregator for this policy.
func (c WageConfig) Aggregator() (timecalc.Aggregator, error) {
	policy, err := c.Policy()
	if err != nil {
		return timecalc.Aggregator{}, err
	}
	if c.MonthlyCapMinutes < 0 {
		return timecalc.Aggregator{}, fmt.Errorf("monthly_cap_minutes must not be negative, got %d", c.MonthlyCapMinutes)
	}
	return timecalc.NewAggregator(policy, c.MonthlyCapMinutes), nil
}
