package engine

import (
	"testing"
	"time"

	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

var tick = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func resolved(t *testing.T, name string) config.ResolvedConfig {
	t.Helper()
	cfg, err := config.Resolve(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestDecide_LowConfidenceHolds(t *testing.T) {
	// Aggressive threshold is 70; confidence 65 must hold.
	e := New(resolved(t, "aggressive"))
	dec := e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 65}, 2500, tick)
	if dec.Action != model.ActionHold {
		t.Errorf("action = %s, want HOLD", dec.Action)
	}
	if e.Position().IsOpen() {
		t.Error("position opened below confidence threshold")
	}
}

func TestDecide_FlatOpensShort(t *testing.T) {
	// Balanced threshold is 75; confidence 82 qualifies.
	e := New(resolved(t, "balanced"))
	dec := e.Decide(model.Signal{Action: model.ActionOpenShort, Confidence: 82}, 2500, tick)
	if dec.Action != model.ActionOpenShort {
		t.Fatalf("action = %s, want OPEN_SHORT", dec.Action)
	}
	pos := e.Position()
	if pos.Direction != model.DirShort {
		t.Errorf("direction = %s, want SHORT", pos.Direction)
	}
	if pos.EntryPrice != 2500 {
		t.Errorf("entry price = %v, want 2500", pos.EntryPrice)
	}
	if !pos.OpenedAt.Equal(tick) {
		t.Errorf("opened at = %v, want %v", pos.OpenedAt, tick)
	}
}

func TestDecide_StopLossDominatesSignal(t *testing.T) {
	// Long from 100 with stop loss 1.5%: a close at 98.4 (-1.6%) forces
	// a close even though the fresh signal says open long again.
	cfg := resolved(t, "balanced") // stop loss 1.5%
	e := New(cfg)
	e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 90}, 100, tick)

	dec := e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 99}, 98.4, tick.Add(time.Minute))
	if dec.Action != model.ActionClose {
		t.Fatalf("action = %s, want CLOSE", dec.Action)
	}
	if dec.Reason != ReasonStopLoss {
		t.Errorf("reason = %q, want %q", dec.Reason, ReasonStopLoss)
	}
	if dec.PnLPct > -1.5 {
		t.Errorf("pnl = %.2f%%, expected <= -1.5%%", dec.PnLPct)
	}
	if e.Position().IsOpen() {
		t.Error("position not reset to flat after stop loss")
	}
}

func TestDecide_TakeProfitDominates(t *testing.T) {
	cfg := resolved(t, "aggressive") // take profit 1.5%
	e := New(cfg)
	e.Decide(model.Signal{Action: model.ActionOpenShort, Confidence: 90}, 100, tick)

	// Short from 100; price at 98.4 is +1.6% in favor.
	dec := e.Decide(model.Signal{Action: model.ActionHold, Confidence: 0}, 98.4, tick.Add(time.Minute))
	if dec.Action != model.ActionClose {
		t.Fatalf("action = %s, want CLOSE", dec.Action)
	}
	if dec.Reason != ReasonTakeProfit {
		t.Errorf("reason = %q, want %q", dec.Reason, ReasonTakeProfit)
	}
}

func TestDecide_RiskExitBoundaryInclusive(t *testing.T) {
	cfg := resolved(t, "balanced") // stop loss 1.5%
	e := New(cfg)
	e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 90}, 100, tick)

	// Exactly -1.5% triggers.
	dec := e.Decide(model.Signal{Action: model.ActionHold, Confidence: 0}, 98.5, tick.Add(time.Minute))
	if dec.Action != model.ActionClose {
		t.Errorf("action at exact stop-loss boundary = %s, want CLOSE", dec.Action)
	}
}

func TestDecide_OpposingSignalFlattensOnly(t *testing.T) {
	e := New(resolved(t, "balanced"))
	e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 90}, 100, tick)

	dec := e.Decide(model.Signal{Action: model.ActionOpenShort, Confidence: 95}, 100.5, tick.Add(time.Minute))
	if dec.Action != model.ActionClose {
		t.Fatalf("action = %s, want CLOSE (flatten, not reverse)", dec.Action)
	}
	if dec.Reason != ReasonOpposing {
		t.Errorf("reason = %q, want %q", dec.Reason, ReasonOpposing)
	}
	if e.Position().IsOpen() {
		t.Error("position should be flat after opposing signal")
	}

	// The reopen is deferred: the next tick's signal may open short.
	dec = e.Decide(model.Signal{Action: model.ActionOpenShort, Confidence: 95}, 100.5, tick.Add(2*time.Minute))
	if dec.Action != model.ActionOpenShort {
		t.Errorf("next tick action = %s, want OPEN_SHORT", dec.Action)
	}
}

func TestDecide_CloseSignalClosesPosition(t *testing.T) {
	e := New(resolved(t, "balanced"))
	e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 90}, 100, tick)

	dec := e.Decide(model.Signal{Action: model.ActionClose, Confidence: 85}, 101, tick.Add(time.Minute))
	if dec.Action != model.ActionClose {
		t.Fatalf("action = %s, want CLOSE", dec.Action)
	}
	if dec.PnLPct != 1.0 {
		t.Errorf("pnl = %v, want 1.0", dec.PnLPct)
	}
}

func TestDecide_NoOps(t *testing.T) {
	e := New(resolved(t, "balanced"))

	// Close while flat is a no-op.
	dec := e.Decide(model.Signal{Action: model.ActionClose, Confidence: 90}, 100, tick)
	if dec.Action != model.ActionHold {
		t.Errorf("close while flat: action = %s, want HOLD", dec.Action)
	}

	// Hold is a no-op in every state.
	dec = e.Decide(model.Signal{Action: model.ActionHold, Confidence: 99}, 100, tick)
	if dec.Action != model.ActionHold {
		t.Errorf("hold while flat: action = %s, want HOLD", dec.Action)
	}

	e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 90}, 100, tick)
	dec = e.Decide(model.Signal{Action: model.ActionHold, Confidence: 99}, 100.1, tick.Add(time.Minute))
	if dec.Action != model.ActionHold {
		t.Errorf("hold while long: action = %s, want HOLD", dec.Action)
	}
	if e.Position().Direction != model.DirLong {
		t.Error("hold mutated the position")
	}

	// A same-direction open while already positioned changes nothing.
	before := e.Position()
	dec = e.Decide(model.Signal{Action: model.ActionOpenLong, Confidence: 95}, 100.2, tick.Add(2*time.Minute))
	if dec.Action != model.ActionHold {
		t.Errorf("same-direction open: action = %s, want HOLD", dec.Action)
	}
	if e.Position() != before {
		t.Error("same-direction open mutated the position")
	}
}

func TestDecide_NeverOpensBelowThresholdAnyProfile(t *testing.T) {
	for _, name := range []string{"aggressive", "balanced", "conservative"} {
		cfg := resolved(t, name)
		e := New(cfg)
		sig := model.Signal{Action: model.ActionOpenLong, Confidence: cfg.ConfidenceThreshold - 0.1}
		if dec := e.Decide(sig, 100, tick); dec.Action != model.ActionHold {
			t.Errorf("%s: action = %s just below threshold, want HOLD", name, dec.Action)
		}
		// At exactly the threshold the signal qualifies.
		sig.Confidence = cfg.ConfidenceThreshold
		if dec := e.Decide(sig, 100, tick); dec.Action != model.ActionOpenLong {
			t.Errorf("%s: action = %s at threshold, want OPEN_LONG", name, dec.Action)
		}
	}
}
