package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tradepulse_ticks_total",
			Help: "Total number of analysis ticks executed.",
		},
	)

	TicksSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tradepulse_ticks_skipped_total",
			Help: "Ticks skipped because the previous one was still in flight.",
		},
	)

	FetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tradepulse_fetch_errors_total",
			Help: "Market data fetches that failed and skipped their tick.",
		},
	)

	AlertsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradepulse_alerts_sent_total",
			Help: "Notifications delivered, by alert kind.",
		},
		[]string{"kind"},
	)

	PositionOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradepulse_position_open",
			Help: "1 when a position is held, 0 when flat.",
		},
	)

	SignalConfidence = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradepulse_signal_confidence",
			Help: "Confidence score of the most recent signal.",
		},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, TicksSkipped, FetchErrors, AlertsSent, PositionOpen, SignalConfidence)
}
