package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// MarketSnapshot holds the candles fetched for one analysis tick,
// most-recent bar last. Immutable once fetched.
type MarketSnapshot struct {
	Instrument string
	Period     time.Duration
	Candles    []OHLCV
	FetchedAt  time.Time
}

// LatestClose returns the close price of the most recent candle,
// or 0 when the snapshot is empty.
func (s *MarketSnapshot) LatestClose() float64 {
	if len(s.Candles) == 0 {
		return 0
	}
	return s.Candles[len(s.Candles)-1].Close
}

// Closes returns the close prices of all candles, oldest first.
func (s *MarketSnapshot) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}
