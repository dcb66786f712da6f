package engine

import (
	"time"

	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

// Decision reasons surfaced in logs, alerts, and history records.
const (
	ReasonStopLoss   = "stop-loss triggered"
	ReasonTakeProfit = "take-profit reached"
	ReasonSignal     = "signal"
	ReasonOpposing   = "opposing signal, flattening"
	ReasonLowConf    = "confidence below threshold"
	ReasonNoAction   = "no qualifying signal"
)

// Engine applies the resolved thresholds and the current position state
// to each tick's fresh signal. It is the sole owner of the Position:
// nothing else mutates it, and the scheduler calls Decide from a single
// goroutine, so no locking is needed.
type Engine struct {
	cfg config.ResolvedConfig
	pos model.Position
}

// New creates an engine starting flat.
func New(cfg config.ResolvedConfig) *Engine {
	return &Engine{cfg: cfg, pos: model.NewFlatPosition()}
}

// Position returns a copy of the current position state.
func (e *Engine) Position() model.Position { return e.pos }

// Decide runs one tick's policy evaluation against the latest close
// price. Checks run in priority order: risk exits first (stop-loss or
// take-profit against the entry overrides whatever the evaluator says),
// then the confidence gate, then the signal-to-transition map. An
// opposing open signal against a held position only flattens; reopening
// is left to the next tick's signal.
func (e *Engine) Decide(sig model.Signal, price float64, now time.Time) model.Decision {
	if e.pos.IsOpen() {
		pnl := e.pos.PnLPercent(price)
		switch {
		case pnl <= -e.cfg.StopLossPct:
			return e.close(price, pnl, ReasonStopLoss)
		case pnl >= e.cfg.TakeProfitPct:
			return e.close(price, pnl, ReasonTakeProfit)
		}
	}

	if sig.Confidence < e.cfg.ConfidenceThreshold {
		return e.hold(price, ReasonLowConf)
	}

	switch {
	case !e.pos.IsOpen() && sig.Action == model.ActionOpenLong:
		return e.open(model.DirLong, model.ActionOpenLong, price, now)
	case !e.pos.IsOpen() && sig.Action == model.ActionOpenShort:
		return e.open(model.DirShort, model.ActionOpenShort, price, now)
	case e.pos.IsOpen() && sig.Action == model.ActionClose:
		return e.close(price, e.pos.PnLPercent(price), ReasonSignal)
	case e.pos.Direction == model.DirLong && sig.Action == model.ActionOpenShort,
		e.pos.Direction == model.DirShort && sig.Action == model.ActionOpenLong:
		return e.close(price, e.pos.PnLPercent(price), ReasonOpposing)
	default:
		// Hold signals, same-direction opens, close while flat.
		return e.hold(price, ReasonNoAction)
	}
}

func (e *Engine) open(dir model.Direction, action model.Action, price float64, now time.Time) model.Decision {
	e.pos = model.Position{Direction: dir, EntryPrice: price, OpenedAt: now}
	return model.Decision{Action: action, Reason: ReasonSignal, Price: price, Position: e.pos}
}

func (e *Engine) close(price, pnl float64, reason string) model.Decision {
	e.pos = model.NewFlatPosition()
	return model.Decision{Action: model.ActionClose, Reason: reason, Price: price, PnLPct: pnl, Position: e.pos}
}

func (e *Engine) hold(price float64, reason string) model.Decision {
	return model.Decision{Action: model.ActionHold, Reason: reason, Price: price, Position: e.pos}
}
