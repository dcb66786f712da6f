package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"TradePulse/internal/alert"
	"TradePulse/internal/collector"
	"TradePulse/internal/config"
	"TradePulse/internal/engine"
	"TradePulse/internal/evaluator"
	"TradePulse/internal/metrics"
	"TradePulse/internal/model"
	"TradePulse/internal/notifier"
	"TradePulse/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Notifier delivers formatted alert messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, subject, body string, maxRetries int) error
}

// Scheduler drives the fixed-cadence analysis loop: once per resolved
// interval it runs one fetch-evaluate-decide-alert-record cycle. The
// whole pipeline executes sequentially inside a single tick goroutine,
// so Position and the alert gate's state have exactly one writer.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.ResolvedConfig
	collector *collector.Collector
	evaluator evaluator.Evaluator
	engine    *engine.Engine
	gate      *alert.Gate
	notifier  Notifier
	recorder  recorder.Recorder
	ctx       context.Context

	mu           sync.Mutex
	tickInFlight bool
	wg           sync.WaitGroup

	lastClose  float64
	tickCount  int
	alertsSent int
}

// New creates a Scheduler. The context bounds the whole run: once it is
// cancelled no new tick starts, and Stop waits for the in-flight one.
func New(ctx context.Context, cfg config.ResolvedConfig, col *collector.Collector,
	eval evaluator.Evaluator, eng *engine.Engine, gate *alert.Gate,
	n Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		cfg:       cfg,
		collector: col,
		evaluator: eval,
		engine:    eng,
		gate:      gate,
		notifier:  n,
		recorder:  rec,
		ctx:       ctx,
	}
}

// Start registers the cadence entry, fires the first tick immediately,
// and starts the timer. The timer never corrects for tick execution
// time: cadence stays fixed in real time, with no catch-up.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.cfg.AnalysisInterval)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("register analysis tick: %w", err)
	}
	go s.tick()
	s.cron.Start()
	log.Printf("[INFO] scheduler started: analyzing %s every %v", s.collector.Instrument, s.cfg.AnalysisInterval)
	return nil
}

// Stop halts the timer and waits for any in-flight tick to finish, so
// no tick is left partially applied.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Printf("[INFO] scheduler stopped: %d ticks analyzed, %d alerts sent", s.tickCount, s.alertsSent)
}

// tick is the guarded entry point for one analysis cycle. At most one
// cycle runs at a time: a cycle due while another is still in flight is
// skipped with a warning, never queued, so load cannot compound under a
// slow fetch. Cancellation is checked here, at the tick boundary only.
func (s *Scheduler) tick() {
	select {
	case <-s.ctx.Done():
		return
	default:
	}

	s.mu.Lock()
	if s.tickInFlight {
		s.mu.Unlock()
		log.Println("[WARN] previous analysis cycle still in flight, skipping this tick")
		metrics.TicksSkipped.Inc()
		return
	}
	s.tickInFlight = true
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.tickInFlight = false
		s.mu.Unlock()
		s.wg.Done()
	}()

	s.runCycle()
}

// runCycle executes one full fetch-evaluate-decide-alert-record
// pipeline. A fetch or evaluation failure skips the rest of the cycle
// and leaves the position untouched; the next tick re-checks risk exits
// as usual.
func (s *Scheduler) runCycle() {
	metrics.TicksTotal.Inc()
	s.tickCount++

	snap, err := s.collector.Collect(s.cfg.KlinePeriod)
	if err != nil {
		log.Printf("[WARN] market data fetch failed, skipping tick: %v", err)
		metrics.FetchErrors.Inc()
		return
	}
	price := snap.LatestClose()

	sig, err := s.evaluator.Evaluate(snap, s.cfg)
	if err != nil {
		log.Printf("[WARN] signal evaluation failed, skipping tick: %v", err)
		return
	}
	metrics.SignalConfidence.Set(sig.Confidence)

	dec := s.engine.Decide(sig, price, snap.FetchedAt)
	if dec.Position.IsOpen() {
		metrics.PositionOpen.Set(1)
	} else {
		metrics.PositionOpen.Set(0)
	}

	log.Printf("[INFO] tick #%d %s: price=%.2f signal=%s confidence=%.1f action=%s (%s)",
		s.tickCount, snap.Instrument, price, sig.Action, sig.Confidence, dec.Action, dec.Reason)

	ev := s.buildEvent(dec, sig, price, snap.FetchedAt)
	if s.gate.ShouldNotify(ev) {
		s.dispatch(ev, dec, sig)
	}

	if err := s.recorder.RecordAnalysis(&recorder.AnalysisRecord{
		Instrument:        snap.Instrument,
		Price:             price,
		SignalAction:      string(sig.Action),
		Confidence:        sig.Confidence,
		DecisionAction:    string(dec.Action),
		Reason:            dec.Reason,
		PositionDirection: string(dec.Position.Direction),
		EntryPrice:        dec.Position.EntryPrice,
		PnLPct:            dec.PnLPct,
	}); err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}

	if s.tickCount%10 == 0 {
		log.Printf("[INFO] statistics: %d ticks analyzed, %d alerts sent", s.tickCount, s.alertsSent)
	}
	s.lastClose = price
}

// buildEvent turns the tick's outcome into the single notification
// candidate the gate judges. Position transitions carry their own kind;
// everything else becomes a delta event measuring the price move since
// the previous tick.
func (s *Scheduler) buildEvent(dec model.Decision, sig model.Signal, price float64, ts time.Time) model.AlertEvent {
	ev := model.AlertEvent{Price: price, Confidence: sig.Confidence, Reason: dec.Reason, Timestamp: ts}
	switch dec.Action {
	case model.ActionOpenLong:
		ev.Kind = model.AlertOpenLong
		ev.Magnitude = sig.Confidence
	case model.ActionOpenShort:
		ev.Kind = model.AlertOpenShort
		ev.Magnitude = sig.Confidence
	case model.ActionClose:
		ev.Kind = model.AlertClose
		ev.Magnitude = dec.PnLPct
	default:
		ev.Kind = model.AlertDelta
		if s.lastClose > 0 {
			ev.Magnitude = (price - s.lastClose) / s.lastClose * 100
		}
	}
	return ev
}

func (s *Scheduler) dispatch(ev model.AlertEvent, dec model.Decision, sig model.Signal) {
	subject, body := notifier.FormatAlert(s.collector.Instrument, ev, dec, sig, s.cfg)
	delivered := true
	if err := s.notifier.SendWithRetry(s.ctx, subject, body, 3); err != nil {
		// Notification failure never touches decision state.
		log.Printf("[ERROR] send notification: %v", err)
		delivered = false
	} else {
		s.alertsSent++
		metrics.AlertsSent.WithLabelValues(string(ev.Kind)).Inc()
	}

	if err := s.recorder.RecordAlert(&recorder.AlertRecord{
		Instrument: s.collector.Instrument,
		Kind:       string(ev.Kind),
		Magnitude:  ev.Magnitude,
		Price:      ev.Price,
		Confidence: ev.Confidence,
		Delivered:  delivered,
	}); err != nil {
		log.Printf("[ERROR] record alert: %v", err)
	}
}
