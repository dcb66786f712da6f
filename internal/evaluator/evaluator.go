package evaluator

import (
	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

// Evaluator turns a market snapshot into a confidence-scored directional
// signal. Implementations must be deterministic for identical input,
// keep confidence within [0, 100], and score the market alone — the
// currently open position is the decision engine's concern, not the
// evaluator's.
type Evaluator interface {
	Evaluate(snap *model.MarketSnapshot, cfg config.ResolvedConfig) (model.Signal, error)
	Name() string
}
