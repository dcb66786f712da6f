package recorder

// AnalysisRecord holds one tick's evaluation outcome.
type AnalysisRecord struct {
	Instrument        string
	Price             float64
	SignalAction      string
	Confidence        float64
	DecisionAction    string
	Reason            string
	PositionDirection string
	EntryPrice        float64
	PnLPct            float64
}

// AlertRecord holds one notification that passed the gate, whether or
// not delivery succeeded.
type AlertRecord struct {
	Instrument string
	Kind       string
	Magnitude  float64
	Price      float64
	Confidence float64
	Delivered  bool
}

// Recorder persists per-tick history for later analysis.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	RecordAlert(rec *AlertRecord) error
	Close() error
}
