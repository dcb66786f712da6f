package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"TradePulse/internal/profile"
)

// Recognized override keys. Keys outside this set are ignored, so new
// variables can appear in the environment without breaking older builds.
const (
	KeyAnalysisInterval    = "ANALYSIS_INTERVAL"
	KeyConfidenceThreshold = "CONFIDENCE_THRESHOLD"
	KeyKlinePeriod         = "K_LINE_PERIOD"
)

var overrideKeys = []string{KeyAnalysisInterval, KeyConfidenceThreshold, KeyKlinePeriod}

// Overrides is a sparse field-name to raw-value mapping, typically
// sourced from the environment. Each present key, once parsed, replaces
// the corresponding profile default.
type Overrides map[string]string

// EnvOverrides collects the recognized override keys present in the
// environment.
func EnvOverrides() Overrides {
	o := Overrides{}
	for _, key := range overrideKeys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			o[key] = v
		}
	}
	return o
}

// InvalidOverrideError reports an override value that failed to parse
// or fell outside its valid range, naming the offending field.
type InvalidOverrideError struct {
	Field string
	Raw   string
	Err   error
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid override %s=%q: %v", e.Field, e.Raw, e.Err)
}

func (e *InvalidOverrideError) Unwrap() error { return e.Err }

// ResolvedConfig is the fully merged, validated configuration used for
// the lifetime of one run. Every field is set, either from the profile
// default or from an override, and is within its valid range. It is
// constructed once at startup and passed explicitly into the scheduler
// and decision components; nothing reads the environment after resolution.
type ResolvedConfig struct {
	ProfileName         profile.Name
	DisplayName         string
	KlinePeriod         time.Duration
	AnalysisInterval    time.Duration
	ConfidenceThreshold float64
	RSIOverbought       float64
	RSIOversold         float64
	TakeProfitPct       float64
	StopLossPct         float64
	EmailDeltaThreshold float64
}

// Resolve merges the named profile's defaults with the given overrides
// into one validated configuration. Overrides take precedence
// field-by-field; resolution is all-or-nothing — any parse or range
// failure aborts with an InvalidOverrideError and no partial result.
// An unknown profile name fails with profile.ErrUnknownProfile.
func Resolve(name string, overrides Overrides) (ResolvedConfig, error) {
	p, err := profile.Lookup(profile.Name(name))
	if err != nil {
		return ResolvedConfig{}, err
	}

	rc := ResolvedConfig{
		ProfileName:         p.Name,
		DisplayName:         p.DisplayName,
		KlinePeriod:         p.KlinePeriod,
		AnalysisInterval:    p.AnalysisInterval,
		ConfidenceThreshold: p.ConfidenceThreshold,
		RSIOverbought:       p.RSIOverbought,
		RSIOversold:         p.RSIOversold,
		TakeProfitPct:       p.TakeProfitPct,
		StopLossPct:         p.StopLossPct,
		EmailDeltaThreshold: p.EmailDeltaThreshold,
	}

	if raw, ok := overrides[KeyAnalysisInterval]; ok {
		secs, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return ResolvedConfig{}, &InvalidOverrideError{KeyAnalysisInterval, raw, err}
		}
		if secs <= 0 {
			return ResolvedConfig{}, &InvalidOverrideError{KeyAnalysisInterval, raw, errors.New("must be a positive number of seconds")}
		}
		rc.AnalysisInterval = time.Duration(secs) * time.Second
	}

	if raw, ok := overrides[KeyConfidenceThreshold]; ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return ResolvedConfig{}, &InvalidOverrideError{KeyConfidenceThreshold, raw, err}
		}
		if v < 0 || v > 100 {
			return ResolvedConfig{}, &InvalidOverrideError{KeyConfidenceThreshold, raw, errors.New("must be in [0, 100]")}
		}
		rc.ConfidenceThreshold = v
	}

	if raw, ok := overrides[KeyKlinePeriod]; ok {
		d, err := parsePeriod(raw)
		if err != nil {
			return ResolvedConfig{}, &InvalidOverrideError{KeyKlinePeriod, raw, err}
		}
		if d <= 0 {
			return ResolvedConfig{}, &InvalidOverrideError{KeyKlinePeriod, raw, errors.New("must be a positive duration")}
		}
		rc.KlinePeriod = d
	}

	if err := rc.validate(); err != nil {
		return ResolvedConfig{}, err
	}
	return rc, nil
}

// parsePeriod parses a kline period string. Exchange-style periods use
// an uppercase hour/day suffix ("1H", "1D"), which time.ParseDuration
// does not accept, so the string is lowercased first.
func parsePeriod(raw string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// validate guards the merged result. The built-in tables always pass;
// a failure here means the profile registry itself is inconsistent.
func (rc ResolvedConfig) validate() error {
	if rc.KlinePeriod <= 0 {
		return fmt.Errorf("resolved kline period must be positive, got %v", rc.KlinePeriod)
	}
	if rc.AnalysisInterval <= 0 {
		return fmt.Errorf("resolved analysis interval must be positive, got %v", rc.AnalysisInterval)
	}
	if rc.ConfidenceThreshold < 0 || rc.ConfidenceThreshold > 100 {
		return fmt.Errorf("resolved confidence threshold must be in [0, 100], got %v", rc.ConfidenceThreshold)
	}
	if rc.TakeProfitPct <= 0 {
		return fmt.Errorf("resolved take profit must be positive, got %v", rc.TakeProfitPct)
	}
	if rc.StopLossPct <= 0 {
		return fmt.Errorf("resolved stop loss must be positive, got %v", rc.StopLossPct)
	}
	if rc.EmailDeltaThreshold <= 0 {
		return fmt.Errorf("resolved email delta threshold must be positive, got %v", rc.EmailDeltaThreshold)
	}
	return nil
}
