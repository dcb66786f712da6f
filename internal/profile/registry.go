package profile

import (
	"errors"
	"fmt"
	"time"
)

// Name identifies one of the built-in strategy profiles.
type Name string

const (
	Aggressive   Name = "aggressive"
	Balanced     Name = "balanced"
	Conservative Name = "conservative"
)

// ErrUnknownProfile is returned by Lookup for any name outside the
// three built-in profiles. Selecting an unknown profile is fatal at
// startup; there is no silent fallback.
var ErrUnknownProfile = errors.New("unknown strategy profile")

// StrategyProfile bundles the cadence and threshold parameters of one
// built-in strategy. Values are fixed at build time; Lookup hands out
// copies, so callers cannot mutate the table.
type StrategyProfile struct {
	Name                Name
	DisplayName         string
	Description         string
	KlinePeriod         time.Duration
	AnalysisInterval    time.Duration
	ConfidenceThreshold float64 // 0-100, minimum score for a non-hold action
	RSIOverbought       float64
	RSIOversold         float64
	TakeProfitPct       float64 // percent move in favor that forces a close
	StopLossPct         float64 // percent move against that forces a close
	EmailDeltaThreshold float64 // percent, minimum magnitude worth notifying
}

var profiles = map[Name]StrategyProfile{
	Aggressive: {
		Name:                Aggressive,
		DisplayName:         "Aggressive Scalping",
		Description:         "5-minute bars, fast in and out, for full-time watching",
		KlinePeriod:         5 * time.Minute,
		AnalysisInterval:    60 * time.Second,
		ConfidenceThreshold: 70.0,
		RSIOverbought:       70,
		RSIOversold:         30,
		TakeProfitPct:       1.5,
		StopLossPct:         1.0,
		EmailDeltaThreshold: 1.2,
	},
	Balanced: {
		Name:                Balanced,
		DisplayName:         "Balanced",
		Description:         "15-minute bars, balances opportunity and safety",
		KlinePeriod:         15 * time.Minute,
		AnalysisInterval:    180 * time.Second,
		ConfidenceThreshold: 75.0,
		RSIOverbought:       75,
		RSIOversold:         25,
		TakeProfitPct:       3.0,
		StopLossPct:         1.5,
		EmailDeltaThreshold: 2.0,
	},
	Conservative: {
		Name:                Conservative,
		DisplayName:         "Conservative Trend",
		Description:         "1-hour bars, trend following, for occasional checking",
		KlinePeriod:         time.Hour,
		AnalysisInterval:    600 * time.Second,
		ConfidenceThreshold: 80.0,
		RSIOverbought:       80,
		RSIOversold:         20,
		TakeProfitPct:       5.0,
		StopLossPct:         2.5,
		EmailDeltaThreshold: 3.0,
	},
}

// Lookup returns the built-in profile for name, or ErrUnknownProfile.
// Pure lookup, no side effects.
func Lookup(name Name) (StrategyProfile, error) {
	p, ok := profiles[name]
	if !ok {
		return StrategyProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Names lists the built-in profile names, for error messages.
func Names() []Name {
	return []Name{Aggressive, Balanced, Conservative}
}
