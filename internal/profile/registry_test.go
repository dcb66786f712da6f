package profile

import (
	"errors"
	"testing"
	"time"
)

func TestLookup_BuiltinDefaults(t *testing.T) {
	tests := []struct {
		name       Name
		kline      time.Duration
		interval   time.Duration
		confidence float64
		takeProfit float64
		stopLoss   float64
		emailDelta float64
	}{
		{Aggressive, 5 * time.Minute, 60 * time.Second, 70.0, 1.5, 1.0, 1.2},
		{Balanced, 15 * time.Minute, 180 * time.Second, 75.0, 3.0, 1.5, 2.0},
		{Conservative, time.Hour, 600 * time.Second, 80.0, 5.0, 2.5, 3.0},
	}
	for _, tt := range tests {
		p, err := Lookup(tt.name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", tt.name, err)
		}
		if p.Name != tt.name {
			t.Errorf("%s: name = %q", tt.name, p.Name)
		}
		if p.KlinePeriod != tt.kline {
			t.Errorf("%s: kline period = %v, want %v", tt.name, p.KlinePeriod, tt.kline)
		}
		if p.AnalysisInterval != tt.interval {
			t.Errorf("%s: analysis interval = %v, want %v", tt.name, p.AnalysisInterval, tt.interval)
		}
		if p.ConfidenceThreshold != tt.confidence {
			t.Errorf("%s: confidence threshold = %v, want %v", tt.name, p.ConfidenceThreshold, tt.confidence)
		}
		if p.TakeProfitPct != tt.takeProfit {
			t.Errorf("%s: take profit = %v, want %v", tt.name, p.TakeProfitPct, tt.takeProfit)
		}
		if p.StopLossPct != tt.stopLoss {
			t.Errorf("%s: stop loss = %v, want %v", tt.name, p.StopLossPct, tt.stopLoss)
		}
		if p.EmailDeltaThreshold != tt.emailDelta {
			t.Errorf("%s: email delta threshold = %v, want %v", tt.name, p.EmailDeltaThreshold, tt.emailDelta)
		}
	}
}

func TestLookup_UnknownProfile(t *testing.T) {
	for _, name := range []Name{"", "turbo", "BALANCED", "balanced "} {
		if _, err := Lookup(name); !errors.Is(err, ErrUnknownProfile) {
			t.Errorf("Lookup(%q): expected ErrUnknownProfile, got %v", name, err)
		}
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	p, err := Lookup(Balanced)
	if err != nil {
		t.Fatal(err)
	}
	p.ConfidenceThreshold = 1

	again, err := Lookup(Balanced)
	if err != nil {
		t.Fatal(err)
	}
	if again.ConfidenceThreshold != 75.0 {
		t.Errorf("registry table mutated through Lookup result: threshold = %v", again.ConfidenceThreshold)
	}
}
