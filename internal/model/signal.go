package model

// Action is a directional trading action.
type Action string

const (
	ActionOpenLong  Action = "OPEN_LONG"
	ActionOpenShort Action = "OPEN_SHORT"
	ActionClose     Action = "CLOSE"
	ActionHold      Action = "HOLD"
)

// Signal is the confidence-scored directional read produced by an
// evaluator for one tick. Confidence is a score in [0, 100].
// The evaluator scores the market alone; position awareness belongs
// to the decision engine.
type Signal struct {
	Action     Action
	Confidence float64
}
