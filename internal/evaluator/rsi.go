package evaluator

import (
	"fmt"
	"math"

	"TradePulse/internal/calculator"
	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

// RSIEvaluator is the default signal evaluator. It reads the Wilder RSI
// against the profile's bands: below oversold reads long, above
// overbought reads short, in between reads hold. Confidence starts at
// 60 when the RSI touches a band and grows toward 100 at the extreme.
type RSIEvaluator struct {
	Period int // RSI lookback; 0 means the conventional 14
}

// NewRSIEvaluator returns an evaluator with the conventional 14-bar lookback.
func NewRSIEvaluator() *RSIEvaluator {
	return &RSIEvaluator{Period: 14}
}

func (e *RSIEvaluator) Name() string { return "rsi" }

// Evaluate scores one snapshot. Fails when the snapshot carries too few
// candles for the lookback; the caller skips the tick in that case.
func (e *RSIEvaluator) Evaluate(snap *model.MarketSnapshot, cfg config.ResolvedConfig) (model.Signal, error) {
	period := e.Period
	if period <= 0 {
		period = 14
	}
	rsi, err := calculator.RSI(snap.Closes(), period)
	if err != nil {
		return model.Signal{}, fmt.Errorf("compute rsi: %w", err)
	}

	switch {
	case rsi <= cfg.RSIOversold:
		return model.Signal{
			Action:     model.ActionOpenLong,
			Confidence: bandConfidence(cfg.RSIOversold-rsi, cfg.RSIOversold),
		}, nil
	case rsi >= cfg.RSIOverbought:
		return model.Signal{
			Action:     model.ActionOpenShort,
			Confidence: bandConfidence(rsi-cfg.RSIOverbought, 100-cfg.RSIOverbought),
		}, nil
	default:
		return model.Signal{Action: model.ActionHold, Confidence: 50}, nil
	}
}

// bandConfidence maps how far the RSI sits past a band onto [60, 100]:
// touching the band scores 60, the far end of the band's range scores 100.
func bandConfidence(excess, span float64) float64 {
	if span <= 0 {
		return 100
	}
	c := 60 + 40*excess/span
	return math.Min(100, math.Max(0, c))
}
