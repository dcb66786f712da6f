package alert

import (
	"math"

	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

// Gate is the single noise-reduction path in front of the notifier.
// Position transitions always pass; delta events pass only when their
// absolute magnitude meets the resolved email threshold, and the same
// magnitude is never alerted twice without a qualifying transition in
// between. The gate's state is mutated only from the scheduler's tick
// goroutine.
type Gate struct {
	threshold     float64
	lastMagnitude float64
	hasLast       bool
}

// NewGate builds a gate from the resolved email delta threshold.
func NewGate(cfg config.ResolvedConfig) *Gate {
	return &Gate{threshold: cfg.EmailDeltaThreshold}
}

// ShouldNotify reports whether the event warrants a notification.
// The threshold comparison is inclusive: a magnitude of exactly the
// threshold fires.
func (g *Gate) ShouldNotify(ev model.AlertEvent) bool {
	switch ev.Kind {
	case model.AlertOpenLong, model.AlertOpenShort, model.AlertClose:
		g.hasLast = false
		return true
	case model.AlertDelta:
		mag := math.Abs(ev.Magnitude)
		if mag < g.threshold {
			return false
		}
		if g.hasLast && mag == g.lastMagnitude {
			return false
		}
		g.lastMagnitude = mag
		g.hasLast = true
		return true
	default:
		return false
	}
}
