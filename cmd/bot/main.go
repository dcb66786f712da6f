package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"TradePulse/internal/alert"
	"TradePulse/internal/collector"
	"TradePulse/internal/config"
	"TradePulse/internal/engine"
	"TradePulse/internal/evaluator"
	"TradePulse/internal/notifier"
	"TradePulse/internal/recorder"
	"TradePulse/internal/scheduler"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradePulse starting...")

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Resolve the strategy profile with env overrides. Any unknown
	// profile or invalid override aborts startup.
	rc, err := config.Resolve(cfg.Strategy, config.EnvOverrides())
	if err != nil {
		log.Fatalf("[FATAL] resolve strategy: %v", err)
	}
	printResolvedProfile(rc, cfg.Instrument)

	// Init collector
	fetcher := collector.NewOKXFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.New(fetcher, cfg.Instrument, cfg.DataSource.KlineLimit)

	// Init notifier
	var n scheduler.Notifier
	if cfg.Email.Sender != "" {
		n = notifier.NewEmailNotifier(cfg.Email.SMTPServer, cfg.Email.SMTPPort,
			cfg.Email.Sender, cfg.Email.Password, cfg.Email.Receiver)
		log.Printf("[INFO] email alerts to %s via %s", cfg.Email.Receiver, cfg.Email.SMTPServer)
	} else {
		n = notifier.NewLogNotifier()
		log.Println("[INFO] no email account configured, alerts go to the log")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Metrics listener
	if cfg.Metrics.Listen != "" {
		go func() {
			log.Printf("[INFO] metrics listening on %s", cfg.Metrics.Listen)
			if err := http.ListenAndServe(cfg.Metrics.Listen, promhttp.Handler()); err != nil {
				log.Printf("[ERROR] metrics listener: %v", err)
			}
		}()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.New(ctx, rc, col, evaluator.NewRSIEvaluator(),
		engine.New(rc), alert.NewGate(rc), n, rec)
	if err := sched.Start(); err != nil {
		log.Fatalf("[FATAL] start scheduler: %v", err)
	}

	log.Println("[INFO] TradePulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	sched.Stop()
	log.Println("[INFO] TradePulse stopped")
}

// printResolvedProfile logs the resolved parameters before the
// scheduling loop starts.
func printResolvedProfile(rc config.ResolvedConfig, instrument string) {
	log.Printf("[INFO] strategy: %s (%s)", rc.DisplayName, rc.ProfileName)
	log.Printf("[INFO] instrument: %s", instrument)
	log.Printf("[INFO] kline period: %v | analysis interval: %v", rc.KlinePeriod, rc.AnalysisInterval)
	log.Printf("[INFO] confidence threshold: %.1f%%", rc.ConfidenceThreshold)
	log.Printf("[INFO] take profit: %.2f%% | stop loss: %.2f%%", rc.TakeProfitPct, rc.StopLossPct)
	log.Printf("[INFO] email delta threshold: %.2f%%", rc.EmailDeltaThreshold)
}
