package model

// Decision is the engine's output for one tick: the action after the
// risk and confidence policies have been applied to the fresh signal.
type Decision struct {
	Action   Action
	Reason   string
	Price    float64
	PnLPct   float64 // realized pnl percent when Action is CLOSE
	Position Position // position state after applying the action
}
