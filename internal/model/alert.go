package model

import "time"

// AlertKind classifies what a notification candidate is about.
type AlertKind string

const (
	AlertOpenLong  AlertKind = "OPEN_LONG"
	AlertOpenShort AlertKind = "OPEN_SHORT"
	AlertClose     AlertKind = "CLOSE"
	AlertDelta     AlertKind = "DELTA"
)

// AlertEvent is a transient notification candidate produced once per
// tick. Magnitude carries the realized pnl percent for closes, the
// signal confidence for opens, and the price move percent since the
// previous tick for delta events. Not persisted; the recorder keeps
// its own history of dispatched alerts.
type AlertEvent struct {
	Kind       AlertKind
	Magnitude  float64
	Price      float64
	Confidence float64
	Reason     string
	Timestamp  time.Time
}
