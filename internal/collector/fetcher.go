package collector

import (
	"time"

	"TradePulse/internal/model"
)

// Fetcher defines the interface for fetching market candlestick data.
type Fetcher interface {
	// FetchCandles returns up to limit bars at the given period for the
	// instrument, oldest first.
	FetchCandles(instrument string, period time.Duration, limit int) ([]model.OHLCV, error)
	Name() string
}
